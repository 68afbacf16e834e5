package connection

import "testing"

func TestValidateRoleArn(t *testing.T) {
	tests := []struct {
		name     string
		arn      string
		wantKind ErrorKind
	}{
		{name: "valid role", arn: "arn:aws:iam::123456789012:role/Foo"},
		{name: "valid role with path", arn: "arn:aws:iam::000000000000:role/service/SpotSave"},
		{name: "not an arn", arn: "not-an-arn", wantKind: KindInvalidArnFormat},
		{name: "empty", arn: "", wantKind: KindInvalidArnFormat},
		{name: "wrong service", arn: "arn:aws:s3:::bucket", wantKind: KindInvalidArnFormat},
		{name: "short non numeric account", arn: "arn:aws:iam::12AB:role/Foo", wantKind: KindInvalidAccountID},
		{name: "eleven digits", arn: "arn:aws:iam::12345678901:role/Foo", wantKind: KindInvalidAccountID},
		{name: "thirteen digits", arn: "arn:aws:iam::1234567890123:role/Foo", wantKind: KindInvalidAccountID},
		{name: "twelve chars with letter", arn: "arn:aws:iam::12345678901a:role/Foo", wantKind: KindInvalidAccountID},
		{name: "signed number", arn: "arn:aws:iam::+12345678901:role/Foo", wantKind: KindInvalidAccountID},
		{name: "missing account segment", arn: "arn:aws:iam::", wantKind: KindInvalidAccountID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateRoleArn(tt.arn)
			if tt.wantKind == "" {
				if got != nil {
					t.Errorf("ValidateRoleArn(%q) = %v, want nil", tt.arn, got)
				}
				return
			}
			if got == nil {
				t.Fatalf("ValidateRoleArn(%q) = nil, want %s", tt.arn, tt.wantKind)
			}
			if got.Type != tt.wantKind {
				t.Errorf("ValidateRoleArn(%q).Type = %s, want %s", tt.arn, got.Type, tt.wantKind)
			}
			if got.Title == "" || got.Message == "" {
				t.Error("failure should carry a title and message")
			}
		})
	}
}

func TestAccountID(t *testing.T) {
	tests := []struct {
		arn  string
		want string
	}{
		{arn: "arn:aws:iam::123456789012:role/Foo", want: "123456789012"},
		{arn: "arn:aws:iam::", want: UnknownAccount},
		{arn: "", want: UnknownAccount},
		{arn: "a:b:c:d:e", want: "e"},
	}

	for _, tt := range tests {
		if got := AccountID(tt.arn); got != tt.want {
			t.Errorf("AccountID(%q) = %q, want %q", tt.arn, got, tt.want)
		}
	}
}

func TestFailure_AppError(t *testing.T) {
	appErr := NewNetworkTimeout().AppError()
	if appErr.StatusCode != 504 {
		t.Errorf("StatusCode = %d, want 504", appErr.StatusCode)
	}
	if appErr.Code != "NETWORK_TIMEOUT" {
		t.Errorf("Code = %s, want NETWORK_TIMEOUT", appErr.Code)
	}

	if got := NewInvalidArnFormat().AppError().StatusCode; got != 400 {
		t.Errorf("InvalidArnFormat StatusCode = %d, want 400", got)
	}
}
