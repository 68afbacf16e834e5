package client

// Session is the (externalId, sessionId) pair issued to this client
type Session struct {
	SessionID  string `json:"sessionId"`
	ExternalID string `json:"externalId"`
	Source     string `json:"source"` // remote, local, memory
	RoleArn    string `json:"roleArn,omitempty"`
}

// Failure is the banner shown for a failed connection
type Failure struct {
	Type    string `json:"type"` // InvalidArnFormat, InvalidAccountId, NetworkTimeout
	Title   string `json:"title"`
	Message string `json:"message"`
}

// ViewState is the server-side UI state of the session
type ViewState struct {
	View       string   `json:"view"` // landing, wizard, demo
	Step       string   `json:"step,omitempty"`
	Method     string   `json:"method"` // cloudformation, cli
	ExternalID string   `json:"externalId,omitempty"`
	RoleArn    string   `json:"roleArn,omitempty"`
	Loading    bool     `json:"loading"`
	Connected  bool     `json:"connected"`
	Feedback   *Failure `json:"feedback,omitempty"`
}

// ConnectResult is returned by a successful connect
type ConnectResult struct {
	Status      string    `json:"status"`
	RoleArn     string    `json:"roleArn"`
	AccountID   string    `json:"accountId"`
	PersistedTo string    `json:"persistedTo"` // remote, local, none
	View        ViewState `json:"view"`
}

// Validation is the outcome of an offline ARN check
type Validation struct {
	Valid     bool     `json:"valid"`
	AccountID string   `json:"accountId,omitempty"`
	Failure   *Failure `json:"failure,omitempty"`
}

// MonthlyRecord is one month of spend history
type MonthlyRecord struct {
	Month     string `json:"month"`
	Actual    int    `json:"actual"`
	Optimized int    `json:"optimized"`
	Waste     int    `json:"waste"`
}

// Recommendation is a generated savings opportunity
type Recommendation struct {
	ID         int    `json:"id"`
	Service    string `json:"service"`
	Type       string `json:"type"`
	Resource   string `json:"resource"`
	Savings    int    `json:"savings"`
	Complexity string `json:"complexity"`
}

// Dashboard is the generated cost dashboard for an account
type Dashboard struct {
	Seed             string           `json:"seed"`
	TotalSpend       int              `json:"totalSpend"`
	WastedSpend      int              `json:"wastedSpend"`
	WastePercentage  float64          `json:"wastePercentage"`
	History          []MonthlyRecord  `json:"history"`
	Recommendations  []Recommendation `json:"recommendations"`
	Score            int              `json:"score"`
	PotentialSavings int              `json:"potentialSavings"`
}

// ScanStep is one line of the analysis log
type ScanStep struct {
	Message    string `json:"message"`
	DurationMs int64  `json:"durationMs"`
}

// Scan is the analysis log for an account
type Scan struct {
	AccountID       string     `json:"accountId"`
	Steps           []ScanStep `json:"steps"`
	TotalDurationMs int64      `json:"totalDurationMs"`
}

// Showcase is the public demo dataset
type Showcase struct {
	Savings []struct {
		Month     string `json:"month"`
		Actual    int    `json:"actual"`
		Optimized int    `json:"optimized"`
	} `json:"savings"`
	Recommendations []struct {
		ID       int    `json:"id"`
		Service  string `json:"service"`
		Type     string `json:"type"`
		Resource string `json:"resource"`
		Savings  int    `json:"savings"`
		Risk     string `json:"risk"`
		Status   string `json:"status"`
	} `json:"recommendations"`
	SpendBreakdown []struct {
		Name  string `json:"name"`
		Value int    `json:"value"`
		Color string `json:"color"`
	} `json:"spendBreakdown"`
	SavingsBreakdown []struct {
		Label   string `json:"label"`
		Percent int    `json:"percent"`
	} `json:"savingsBreakdown"`
	TotalPotentialSavings int      `json:"totalPotentialSavings"`
	OptimizationScore     int      `json:"optimizationScore"`
	TimeRanges            []string `json:"timeRanges"`
}

// Instructions is the setup copy for one provisioning method
type Instructions struct {
	Method      string   `json:"method"`
	Summary     string   `json:"summary"`
	ExternalID  string   `json:"externalId"`
	StackName   string   `json:"stackName"`
	TemplateURL string   `json:"templateUrl"`
	SourceURL   string   `json:"sourceUrl,omitempty"`
	LaunchURL   string   `json:"launchUrl"`
	Steps       []string `json:"steps"`
	Script      string   `json:"script,omitempty"`
	ArnHint     string   `json:"arnHint"`
	Safety      []struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	} `json:"safety"`
}

// Script is the CloudShell provisioning script
type Script struct {
	ExternalID string `json:"externalId"`
	StackName  string `json:"stackName"`
	Script     string `json:"script"`
}

// HealthResponse represents the API health status
type HealthResponse struct {
	Status       string `json:"status"`
	SessionStore string `json:"sessionStore,omitempty"`
	Database     string `json:"database,omitempty"`
}
