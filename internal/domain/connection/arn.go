package connection

import "strings"

// RoleArnPrefix is the required prefix of an IAM role ARN
const RoleArnPrefix = "arn:aws:iam::"

// UnknownAccount is the seed used when an ARN has no account segment
const UnknownAccount = "UNKNOWN"

const accountIDLength = 12

// ValidateRoleArn checks the shape of a role ARN. It returns nil or a
// *Failure of kind InvalidArnFormat or InvalidAccountId.
func ValidateRoleArn(roleArn string) *Failure {
	if !strings.HasPrefix(roleArn, RoleArnPrefix) {
		return NewInvalidArnFormat()
	}

	if !isAccountID(segment(roleArn, 4)) {
		return NewInvalidAccountID()
	}

	return nil
}

// AccountID returns the account segment of an ARN, or UnknownAccount when
// the segment is missing or empty.
func AccountID(roleArn string) string {
	if id := segment(roleArn, 4); id != "" {
		return id
	}
	return UnknownAccount
}

// segment returns the i-th colon-delimited field, or "" when absent
func segment(s string, i int) string {
	parts := strings.Split(s, ":")
	if i >= len(parts) {
		return ""
	}
	return parts[i]
}

func isAccountID(s string) bool {
	if len(s) != accountIDLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
