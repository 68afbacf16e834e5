package setup

import (
	"fmt"

	"github.com/pandey-solutions/saves/internal/domain/view"
)

const (
	// ConsoleURL opens the CloudFormation create-stack page
	ConsoleURL = "https://console.aws.amazon.com/cloudformation/home#/stacks/create"

	// CloudShellURL opens AWS CloudShell
	CloudShellURL = "https://console.aws.amazon.com/cloudshell/home"
)

// Instructions is everything the wizard shows for one provisioning method
type Instructions struct {
	Method      view.Method `json:"method"`
	Summary     string      `json:"summary"`
	ExternalID  string      `json:"externalId"`
	StackName   string      `json:"stackName"`
	TemplateURL string      `json:"templateUrl"`
	SourceURL   string      `json:"sourceUrl,omitempty"`
	LaunchURL   string      `json:"launchUrl"`
	Steps       []string    `json:"steps"`
	Script      string      `json:"script,omitempty"`
	ArnHint     string      `json:"arnHint"`
	Safety      []Note      `json:"safety"`
}

// Note is one item of the "why this is safe" panel
type Note struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

var safetyNotes = []Note{
	{Title: "No Long-Term Keys", Body: "We never ask for Access Keys or Secret Keys. You are creating a Role that we can only \"assume\" temporarily."},
	{Title: "The \"External ID\"", Body: "This random string prevents the \"Confused Deputy\" problem. Only your specific Saves account can assume this role."},
	{Title: "Read-Only Access", Body: "The policies attached are strictly read-only. We cannot modify your infrastructure, delete resources, or see sensitive data like S3 object contents."},
	{Title: "Audit & Revoke", Body: "You can see every action we take in your CloudTrail logs. You can delete the CloudFormation stack instantly to revoke our access."},
}

// BuildInstructions returns the wizard copy for method. An empty externalID
// is allowed while the session is still resolving; the CLI script is only
// rendered once it is known.
func BuildInstructions(opts Options, method view.Method, externalID string) (*Instructions, error) {
	if method == "" {
		method = view.MethodCloudFormation
	}
	if !method.Valid() {
		return nil, fmt.Errorf("unknown provisioning method %q", method)
	}

	in := &Instructions{
		Method:      method,
		ExternalID:  externalID,
		StackName:   opts.StackName,
		TemplateURL: opts.TemplateURL,
		SourceURL:   opts.SourceURL,
		Safety:      safetyNotes,
	}

	switch method {
	case view.MethodCloudFormation:
		in.Summary = "Download the template and upload it to the AWS Console."
		in.LaunchURL = ConsoleURL
		in.Steps = []string{
			"Click Download Template to save the YAML file.",
			"Click Open Console to visit AWS CloudFormation.",
			"Select \"Upload a template file\" and choose the file.",
			fmt.Sprintf("Enter Stack Name: %s", opts.StackName),
			fmt.Sprintf("Paste External ID: %s", externalID),
		}
		in.ArnHint = "Paste the RoleArn from the CloudFormation \"Outputs\" tab."

	case view.MethodCLI:
		in.Summary = "Execute this snippet in CloudShell to create the stack instantly."
		in.LaunchURL = CloudShellURL
		in.Steps = []string{
			"Open AWS CloudShell.",
			"Paste and run the script.",
			"Copy the ARN printed at the end.",
		}
		in.ArnHint = "Paste the ARN output from the script."
		if externalID != "" {
			script, err := Script(opts, externalID)
			if err != nil {
				return nil, err
			}
			in.Script = script
		}
	}

	return in, nil
}
