package providers

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
)

// maxRegionWorkers bounds concurrent per-region EC2 calls
const maxRegionWorkers = 5

// EC2Factory builds an EC2 client for assumed-role credentials in region
type EC2Factory func(creds aws.CredentialsProvider, region string) EC2Client

// Instance is one EC2 instance seen through the customer role
type Instance struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	State      string    `json:"state"`
	Region     string    `json:"region"`
	LaunchTime time.Time `json:"launchTime,omitempty"`
}

// Inventory is the result of an instance scan. Regions that could not be
// read are listed in Failed with their error and do not fail the scan.
type Inventory struct {
	Regions   []string          `json:"regions"`
	Instances []Instance        `json:"instances"`
	Failed    map[string]string `json:"failed,omitempty"`
}

// Instances lists EC2 instances in every enabled region of the account
// behind roleArn.
func (a *AWSAnalyzer) Instances(ctx context.Context, roleArn, externalID string) (*Inventory, error) {
	if a.newEC2 == nil {
		return nil, fmt.Errorf("EC2 client is not configured")
	}

	creds, err := a.AssumeRole(ctx, roleArn, externalID)
	if err != nil {
		return nil, err
	}

	home := nonEmpty(a.cfg.Region, "us-east-1")
	inv := &Inventory{Failed: map[string]string{}}

	resp, err := a.newEC2(creds, home).DescribeRegions(ctx, &ec2.DescribeRegionsInput{})
	if err != nil {
		inv.Failed[home] = fmt.Sprintf("describe regions: %v", err)
	} else {
		for _, r := range resp.Regions {
			if r.RegionName != nil {
				inv.Regions = append(inv.Regions, *r.RegionName)
			}
		}
	}
	if len(inv.Regions) == 0 {
		inv.Regions = []string{home}
	}
	sort.Strings(inv.Regions)

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		sem = make(chan struct{}, maxRegionWorkers)
	)
	for _, region := range inv.Regions {
		wg.Add(1)
		sem <- struct{}{}
		go func(region string) {
			defer wg.Done()
			defer func() { <-sem }()

			instances, err := a.instancesInRegion(ctx, creds, region)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				inv.Failed[region] = err.Error()
				return
			}
			inv.Instances = append(inv.Instances, instances...)
		}(region)
	}
	wg.Wait()

	sort.Slice(inv.Instances, func(i, j int) bool {
		if inv.Instances[i].Region != inv.Instances[j].Region {
			return inv.Instances[i].Region < inv.Instances[j].Region
		}
		return inv.Instances[i].ID < inv.Instances[j].ID
	})
	if len(inv.Failed) == 0 {
		inv.Failed = nil
	}

	return inv, nil
}

func (a *AWSAnalyzer) instancesInRegion(ctx context.Context, creds aws.CredentialsProvider, region string) ([]Instance, error) {
	var out []Instance
	p := ec2.NewDescribeInstancesPaginator(a.newEC2(creds, region), &ec2.DescribeInstancesInput{})

	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return out, fmt.Errorf("describe instances in %s: %w", region, err)
		}
		for _, res := range page.Reservations {
			for _, inst := range res.Instances {
				id := nonEmpty(aws.ToString(inst.InstanceId), "unknown")
				i := Instance{
					ID:     id,
					Name:   id,
					Type:   string(inst.InstanceType),
					Region: region,
				}
				for _, t := range inst.Tags {
					if aws.ToString(t.Key) == "Name" && aws.ToString(t.Value) != "" {
						i.Name = aws.ToString(t.Value)
						break
					}
				}
				if inst.State != nil {
					i.State = string(inst.State.Name)
				}
				if inst.LaunchTime != nil {
					i.LaunchTime = *inst.LaunchTime
				}
				out = append(out, i)
			}
		}
	}
	return out, nil
}
