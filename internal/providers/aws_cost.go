package providers

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	cetypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/pandey-solutions/saves/internal/config"
)

// costExplorerRegion is the only region serving the Cost Explorer API
const costExplorerRegion = "us-east-1"

// MonthlyCost is one month of unblended spend
type MonthlyCost struct {
	Month  string    `json:"month"`
	Start  time.Time `json:"start"`
	Amount float64   `json:"amount"`
	Unit   string    `json:"unit"`
}

// CostExplorerFactory builds a Cost Explorer client for assumed-role credentials
type CostExplorerFactory func(creds aws.CredentialsProvider) CostExplorerClient

// AWSAnalyzer assumes a customer's cross-account role and reads its cost history
type AWSAnalyzer struct {
	cfg    config.AWSConfig
	sts    STSClient
	newCE  CostExplorerFactory
	newEC2 EC2Factory
	now    func() time.Time
}

// NewAWSAnalyzer creates an analyzer using the caller's AWS configuration
func NewAWSAnalyzer(ctx context.Context, cfg config.AWSConfig, creds AWSCredentials) (*AWSAnalyzer, error) {
	if creds.Region == "" {
		creds.Region = cfg.Region
	}
	base, err := LoadAWSConfig(ctx, creds)
	if err != nil {
		return nil, err
	}

	factory := func(p aws.CredentialsProvider) CostExplorerClient {
		ceCfg := base.Copy()
		ceCfg.Region = costExplorerRegion
		ceCfg.Credentials = aws.NewCredentialsCache(p)
		return costexplorer.NewFromConfig(ceCfg)
	}

	ec2Factory := func(p aws.CredentialsProvider, region string) EC2Client {
		ec2Cfg := base.Copy()
		ec2Cfg.Region = region
		ec2Cfg.Credentials = aws.NewCredentialsCache(p)
		return ec2.NewFromConfig(ec2Cfg)
	}

	return NewAWSAnalyzerWithClients(cfg, sts.NewFromConfig(base), factory).WithEC2(ec2Factory), nil
}

// NewAWSAnalyzerWithClients creates an analyzer from explicit clients
func NewAWSAnalyzerWithClients(cfg config.AWSConfig, stsClient STSClient, factory CostExplorerFactory) *AWSAnalyzer {
	return &AWSAnalyzer{
		cfg:   cfg,
		sts:   stsClient,
		newCE: factory,
		now:   time.Now,
	}
}

// WithEC2 sets the factory used for the instance inventory
func (a *AWSAnalyzer) WithEC2(factory EC2Factory) *AWSAnalyzer {
	a.newEC2 = factory
	return a
}

// AssumeRole obtains temporary credentials for roleArn guarded by externalID
func (a *AWSAnalyzer) AssumeRole(ctx context.Context, roleArn, externalID string) (aws.CredentialsProvider, error) {
	out, err := a.sts.AssumeRole(ctx, &sts.AssumeRoleInput{
		RoleArn:         aws.String(roleArn),
		RoleSessionName: aws.String(a.cfg.SessionName),
		ExternalId:      aws.String(externalID),
		DurationSeconds: aws.Int32(a.cfg.DurationSecs),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to assume role %s: %w", roleArn, err)
	}
	if out.Credentials == nil {
		return nil, fmt.Errorf("assume role %s returned no credentials", roleArn)
	}

	c := out.Credentials
	return credentials.NewStaticCredentialsProvider(
		aws.ToString(c.AccessKeyId),
		aws.ToString(c.SecretAccessKey),
		aws.ToString(c.SessionToken),
	), nil
}

// MonthlyCosts returns unblended cost per month for the last months full
// months of the account behind roleArn.
func (a *AWSAnalyzer) MonthlyCosts(ctx context.Context, roleArn, externalID string, months int) ([]MonthlyCost, error) {
	if months <= 0 {
		months = 6
	}

	creds, err := a.AssumeRole(ctx, roleArn, externalID)
	if err != nil {
		return nil, err
	}

	now := a.now().UTC()
	end := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	start := end.AddDate(0, -months, 0)

	result, err := a.newCE(creds).GetCostAndUsage(ctx, &costexplorer.GetCostAndUsageInput{
		TimePeriod: &cetypes.DateInterval{
			Start: aws.String(start.Format("2006-01-02")),
			End:   aws.String(end.Format("2006-01-02")),
		},
		Granularity: cetypes.GranularityMonthly,
		Metrics:     []string{"UnblendedCost"},
	})
	if err != nil {
		return nil, fmt.Errorf("AWS Cost Explorer API error: %w", err)
	}

	var costs []MonthlyCost
	for _, r := range result.ResultsByTime {
		if r.TimePeriod == nil {
			continue
		}
		periodStart, err := time.Parse("2006-01-02", aws.ToString(r.TimePeriod.Start))
		if err != nil {
			continue
		}

		mc := MonthlyCost{
			Month: periodStart.Format("Jan"),
			Start: periodStart,
			Unit:  "USD",
		}
		if metric, ok := r.Total["UnblendedCost"]; ok {
			mc.Amount, _ = strconv.ParseFloat(aws.ToString(metric.Amount), 64)
			mc.Unit = nonEmpty(aws.ToString(metric.Unit), mc.Unit)
		}
		costs = append(costs, mc)
	}

	return costs, nil
}
