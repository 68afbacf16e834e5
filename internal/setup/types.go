package setup

// Template is a CloudFormation template document
type Template struct {
	AWSTemplateFormatVersion string                 `json:"AWSTemplateFormatVersion" yaml:"AWSTemplateFormatVersion"`
	Description              string                 `json:"Description,omitempty" yaml:"Description,omitempty"`
	Parameters               map[string]Parameter   `json:"Parameters,omitempty" yaml:"Parameters,omitempty"`
	Resources                map[string]Resource    `json:"Resources" yaml:"Resources"`
	Outputs                  map[string]Output      `json:"Outputs,omitempty" yaml:"Outputs,omitempty"`
	Metadata                 map[string]interface{} `json:"Metadata,omitempty" yaml:"Metadata,omitempty"`
}

// Parameter is a CloudFormation template parameter
type Parameter struct {
	Type                  string `json:"Type" yaml:"Type"`
	Description           string `json:"Description,omitempty" yaml:"Description,omitempty"`
	AllowedPattern        string `json:"AllowedPattern,omitempty" yaml:"AllowedPattern,omitempty"`
	ConstraintDescription string `json:"ConstraintDescription,omitempty" yaml:"ConstraintDescription,omitempty"`
	MinLength             *int   `json:"MinLength,omitempty" yaml:"MinLength,omitempty"`
	MaxLength             *int   `json:"MaxLength,omitempty" yaml:"MaxLength,omitempty"`
	NoEcho                bool   `json:"NoEcho,omitempty" yaml:"NoEcho,omitempty"`
}

// Resource is a CloudFormation resource
type Resource struct {
	Type       string                 `json:"Type" yaml:"Type"`
	Properties map[string]interface{} `json:"Properties,omitempty" yaml:"Properties,omitempty"`
}

// Output is a CloudFormation stack output
type Output struct {
	Description string      `json:"Description,omitempty" yaml:"Description,omitempty"`
	Value       interface{} `json:"Value" yaml:"Value"`
}

// PolicyDocument is an IAM policy document
type PolicyDocument struct {
	Version   string      `json:"Version" yaml:"Version"`
	Statement []Statement `json:"Statement" yaml:"Statement"`
}

// Statement is a single IAM policy statement
type Statement struct {
	Sid       string                                `json:"Sid,omitempty" yaml:"Sid,omitempty"`
	Effect    string                                `json:"Effect" yaml:"Effect"`
	Principal map[string]interface{}                `json:"Principal,omitempty" yaml:"Principal,omitempty"`
	Action    []string                              `json:"Action" yaml:"Action"`
	Resource  string                                `json:"Resource,omitempty" yaml:"Resource,omitempty"`
	Condition map[string]map[string]interface{} `json:"Condition,omitempty" yaml:"Condition,omitempty"`
}
