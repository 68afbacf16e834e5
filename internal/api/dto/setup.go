package dto

// ScriptDTO is the CloudShell provisioning script for one external id
type ScriptDTO struct {
	ExternalID string `json:"externalId"`
	StackName  string `json:"stackName"`
	Script     string `json:"script"`
}
