// Package setup renders the artifacts a customer uses to grant read-only
// access: the CloudFormation role template, the CloudShell script and the
// console instructions.
package setup

import (
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/pandey-solutions/saves/internal/config"
)

const (
	// TemplateFilename is the download name of the role template
	TemplateFilename = "saves-integration.yaml"

	// ScriptTemplateFile is the file the CloudShell script writes the template to
	ScriptTemplateFile = "spotsave-role.yaml"

	// ExternalIDParameter is the template parameter carrying the external id
	ExternalIDParameter = "ExternalId"

	// RoleArnOutput is the stack output holding the created role ARN
	RoleArnOutput = "RoleArn"

	roleResource   = "SpotSaveRole"
	iamVersion     = "2012-10-17"
	cfnVersion     = "2010-09-09"
	viewOnlyPolicy = "arn:aws:iam::aws:policy/job-function/ViewOnlyAccess"
)

// externalIDChars are the characters AWS accepts in sts:ExternalId
const externalIDChars = `[\w+=,.@:/-]*`

var externalIDPattern = regexp.MustCompile(`^` + externalIDChars + `$`)

const (
	minExternalIDLen = 2
	maxExternalIDLen = 1224
)

// costReadActions are the read-only APIs the analysis needs beyond ViewOnlyAccess
var costReadActions = []string{
	"ce:GetCostAndUsage",
	"ce:GetCostForecast",
	"ce:GetReservationUtilization",
	"ce:GetSavingsPlansUtilization",
	"ce:GetRightsizingRecommendation",
	"cloudwatch:GetMetricData",
	"cloudwatch:GetMetricStatistics",
	"compute-optimizer:GetEC2InstanceRecommendations",
	"compute-optimizer:GetEBSVolumeRecommendations",
	"ec2:DescribeInstances",
	"ec2:DescribeVolumes",
	"rds:DescribeDBInstances",
	"s3:GetLifecycleConfiguration",
}

// Options are the values rendered into the setup artifacts
type Options struct {
	TrustedAccountID string
	StackName        string
	RoleName         string
	TemplateURL      string
	SourceURL        string
}

// OptionsFromConfig builds Options from the setup configuration
func OptionsFromConfig(cfg config.SetupConfig) Options {
	return Options{
		TrustedAccountID: cfg.TrustedAccountID,
		StackName:        cfg.StackName,
		RoleName:         cfg.RoleName,
		TemplateURL:      cfg.TemplateURL,
		SourceURL:        cfg.GitHubURL,
	}
}

// ValidExternalID reports whether id can be used as an sts:ExternalId
func ValidExternalID(id string) bool {
	if len(id) < minExternalIDLen || len(id) > maxExternalIDLen {
		return false
	}
	return externalIDPattern.MatchString(id)
}

// BuildTemplate returns the role template document
func BuildTemplate(opts Options) *Template {
	minLen, maxLen := minExternalIDLen, maxExternalIDLen

	trust := PolicyDocument{
		Version: iamVersion,
		Statement: []Statement{{
			Effect:    "Allow",
			Principal: map[string]interface{}{"AWS": fmt.Sprintf("arn:aws:iam::%s:root", opts.TrustedAccountID)},
			Action:    []string{"sts:AssumeRole"},
			Condition: map[string]map[string]interface{}{
				"StringEquals": {"sts:ExternalId": map[string]string{"Ref": ExternalIDParameter}},
			},
		}},
	}

	costPolicy := PolicyDocument{
		Version: iamVersion,
		Statement: []Statement{{
			Sid:      "CostAnalysisReadOnly",
			Effect:   "Allow",
			Action:   costReadActions,
			Resource: "*",
		}},
	}

	return &Template{
		AWSTemplateFormatVersion: cfnVersion,
		Description:              "Saves by Pandey Solutions: read-only cross-account role for cost analysis",
		Parameters: map[string]Parameter{
			ExternalIDParameter: {
				Type:                  "String",
				Description:           "External ID shown in the Saves connection wizard",
				AllowedPattern:        externalIDChars,
				ConstraintDescription: "Must be the External ID from the Saves connection wizard",
				MinLength:             &minLen,
				MaxLength:             &maxLen,
			},
		},
		Resources: map[string]Resource{
			roleResource: {
				Type: "AWS::IAM::Role",
				Properties: map[string]interface{}{
					"RoleName":                 opts.RoleName,
					"AssumeRolePolicyDocument": trust,
					"ManagedPolicyArns":        []string{viewOnlyPolicy},
					"Policies": []map[string]interface{}{{
						"PolicyName":     "SavesCostAnalysis",
						"PolicyDocument": costPolicy,
					}},
					"MaxSessionDuration": 3600,
				},
			},
		},
		Outputs: map[string]Output{
			RoleArnOutput: {
				Description: "Paste this ARN into the Saves connection wizard",
				Value:       map[string]interface{}{"Fn::GetAtt": []string{roleResource, "Arn"}},
			},
		},
	}
}

// RenderTemplate renders the role template as YAML
func RenderTemplate(opts Options) ([]byte, error) {
	out, err := yaml.Marshal(BuildTemplate(opts))
	if err != nil {
		return nil, fmt.Errorf("failed to render template: %w", err)
	}
	return out, nil
}

// ParseTemplate parses a YAML role template
func ParseTemplate(content []byte) (*Template, error) {
	var t Template
	if err := yaml.Unmarshal(content, &t); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if len(t.Resources) == 0 {
		return nil, fmt.Errorf("template has no resources")
	}
	return &t, nil
}
