package setup

import (
	"fmt"
	"strings"
)

// Script returns the CloudShell snippet that creates the role stack for
// externalID and prints the resulting role ARN.
func Script(opts Options, externalID string) (string, error) {
	if !ValidExternalID(externalID) {
		return "", fmt.Errorf("invalid external id %q", externalID)
	}

	body, err := RenderTemplate(opts)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("# Create the template file\n")
	fmt.Fprintf(&b, "cat << 'EOF' > %s\n", ScriptTemplateFile)
	b.Write(body)
	b.WriteString("EOF\n\n")

	b.WriteString("# Create the Stack\n")
	b.WriteString("aws cloudformation create-stack \\\n")
	fmt.Fprintf(&b, "  --stack-name %s \\\n", opts.StackName)
	fmt.Fprintf(&b, "  --template-body file://%s \\\n", ScriptTemplateFile)
	fmt.Fprintf(&b, "  --parameters ParameterKey=%s,ParameterValue=%s \\\n", ExternalIDParameter, externalID)
	b.WriteString("  --capabilities CAPABILITY_NAMED_IAM\n\n")

	b.WriteString("# Wait for creation (optional)\n")
	fmt.Fprintf(&b, "aws cloudformation wait stack-create-complete --stack-name %s\n\n", opts.StackName)

	b.WriteString("# Get the Role ARN\n")
	b.WriteString("aws cloudformation describe-stacks \\\n")
	fmt.Fprintf(&b, "  --stack-name %s \\\n", opts.StackName)
	fmt.Fprintf(&b, "  --query \"Stacks[0].Outputs[?OutputKey=='%s'].OutputValue\" \\\n", RoleArnOutput)
	b.WriteString("  --output text")

	return b.String(), nil
}
