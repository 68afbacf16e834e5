package setup

import (
	"strings"
	"testing"

	"github.com/pandey-solutions/saves/internal/domain/view"
)

func testOptions() Options {
	return Options{
		TrustedAccountID: "123456789012",
		StackName:        "SpotSave-Access-Role",
		RoleName:         "SpotSaveReadOnlyRole",
		TemplateURL:      "https://s3.amazonaws.com/spotsave-public/spotsave-role.yaml",
	}
}

func TestRenderTemplate_RoundTrip(t *testing.T) {
	out, err := RenderTemplate(testOptions())
	if err != nil {
		t.Fatalf("RenderTemplate() error = %v", err)
	}

	tmpl, err := ParseTemplate(out)
	if err != nil {
		t.Fatalf("ParseTemplate() error = %v", err)
	}

	if tmpl.AWSTemplateFormatVersion != "2010-09-09" {
		t.Errorf("AWSTemplateFormatVersion = %q", tmpl.AWSTemplateFormatVersion)
	}
	if _, ok := tmpl.Parameters[ExternalIDParameter]; !ok {
		t.Error("template is missing the ExternalId parameter")
	}
	if _, ok := tmpl.Outputs[RoleArnOutput]; !ok {
		t.Error("template is missing the RoleArn output")
	}

	role, ok := tmpl.Resources["SpotSaveRole"]
	if !ok {
		t.Fatal("template is missing the role resource")
	}
	if role.Type != "AWS::IAM::Role" {
		t.Errorf("role type = %q", role.Type)
	}

	text := string(out)
	for _, want := range []string{
		"arn:aws:iam::123456789012:root",
		"sts:ExternalId",
		"Ref: ExternalId",
		"ViewOnlyAccess",
		"ce:GetCostAndUsage",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("template does not contain %q", want)
		}
	}
}

func TestScript(t *testing.T) {
	ext := "0b6c6d1e-1f4e-4a53-9d61-1c7d9d6c1234"
	script, err := Script(testOptions(), ext)
	if err != nil {
		t.Fatalf("Script() error = %v", err)
	}

	for _, want := range []string{
		"cat << 'EOF' > spotsave-role.yaml",
		"--stack-name SpotSave-Access-Role",
		"ParameterKey=ExternalId,ParameterValue=" + ext,
		"--capabilities CAPABILITY_NAMED_IAM",
		"aws cloudformation wait stack-create-complete",
		"OutputKey=='RoleArn'",
	} {
		if !strings.Contains(script, want) {
			t.Errorf("script does not contain %q", want)
		}
	}

	if strings.HasSuffix(script, "\n") {
		t.Error("script should be trimmed")
	}
}

func TestScript_RejectsUnsafeExternalID(t *testing.T) {
	for _, ext := range []string{"", "a", "id; rm -rf /", "$(whoami)", "quote'd"} {
		if _, err := Script(testOptions(), ext); err == nil {
			t.Errorf("Script(%q) expected error", ext)
		}
	}
}

func TestBuildInstructions(t *testing.T) {
	tests := []struct {
		name       string
		method     view.Method
		externalID string
		wantLaunch string
		wantScript bool
		wantErr    bool
	}{
		{name: "default method", externalID: "ext-123", wantLaunch: ConsoleURL},
		{name: "cloudformation", method: view.MethodCloudFormation, externalID: "ext-123", wantLaunch: ConsoleURL},
		{name: "cli with id", method: view.MethodCLI, externalID: "ext-123", wantLaunch: CloudShellURL, wantScript: true},
		{name: "cli awaiting session", method: view.MethodCLI, wantLaunch: CloudShellURL},
		{name: "unknown method", method: "terraform", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := BuildInstructions(testOptions(), tt.method, tt.externalID)
			if (err != nil) != tt.wantErr {
				t.Fatalf("BuildInstructions() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if in.LaunchURL != tt.wantLaunch {
				t.Errorf("LaunchURL = %q, want %q", in.LaunchURL, tt.wantLaunch)
			}
			if (in.Script != "") != tt.wantScript {
				t.Errorf("Script present = %v, want %v", in.Script != "", tt.wantScript)
			}
			if len(in.Steps) == 0 || in.ArnHint == "" || len(in.Safety) != 4 {
				t.Errorf("incomplete instructions: %+v", in)
			}
		})
	}
}
