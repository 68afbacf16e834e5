package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/pandey-solutions/saves/internal/providers"
	"github.com/pandey-solutions/saves/pkg/client"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	prev := stdout
	stdout = buf
	t.Cleanup(func() { stdout = prev })
	return buf
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{in: 0, want: "$0"},
		{in: 999, want: "$999"},
		{in: 1000, want: "$1,000"},
		{in: 5770, want: "$5,770"},
		{in: 1234567, want: "$1,234,567"},
		{in: -2150, want: "-$2,150"},
	}

	for _, tt := range tests {
		if got := formatMoney(tt.in); got != tt.want {
			t.Errorf("formatMoney(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("db-prod-01", 20); got != "db-prod-01" {
		t.Errorf("truncate() = %q", got)
	}
	if got := truncate("i-0123456789abcdef", 10); got != "i-01234..." {
		t.Errorf("truncate() = %q, want i-01234...", got)
	}
}

func TestRunValidate(t *testing.T) {
	tests := []struct {
		name    string
		arn     string
		wantErr bool
		want    string
	}{
		{name: "valid", arn: "arn:aws:iam::123456789012:role/SpotSaveReadOnlyRole", want: "account 123456789012"},
		{name: "bad prefix", arn: "arn:aws:s3:::bucket", wantErr: true, want: "Invalid Role ARN"},
		{name: "bad account", arn: "arn:aws:iam::12ab:role/x", wantErr: true, want: "[-]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := captureOutput(t)
			err := runValidate(tt.arn)
			if (err != nil) != tt.wantErr {
				t.Errorf("runValidate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("output %q does not contain %q", out.String(), tt.want)
			}
		})
	}
}

func TestReplayScan(t *testing.T) {
	out := captureOutput(t)
	steps := []client.ScanStep{
		{Message: "Authenticating", DurationMs: 1000},
		{Message: "Analyzing", DurationMs: 2000},
	}

	if err := replayScan(context.Background(), steps, 1000); err != nil {
		t.Fatalf("replayScan() error = %v", err)
	}
	if !strings.Contains(out.String(), "> Authenticating\n> Analyzing\n") {
		t.Errorf("output = %q", out.String())
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := replayScan(ctx, []client.ScanStep{{Message: "slow", DurationMs: int64(time.Hour / time.Millisecond)}}, 1); err == nil {
		t.Error("replayScan() expected error after cancel")
	}
}

func TestRenderDashboard(t *testing.T) {
	out := captureOutput(t)
	d := &client.Dashboard{
		Seed:             "123456789012",
		TotalSpend:       5770,
		WastedSpend:      1795,
		WastePercentage:  31.1,
		Score:            77,
		PotentialSavings: 1869,
		History:          []client.MonthlyRecord{{Month: "Aug", Actual: 6150, Optimized: 4237, Waste: 1913}},
		Recommendations:  []client.Recommendation{{Service: "RDS", Type: "Modernize", Resource: "res-8509", Savings: 389, Complexity: "Easy"}},
	}

	if err := renderDashboard(context.Background(), d, false); err != nil {
		t.Fatalf("renderDashboard() error = %v", err)
	}

	for _, want := range []string{"$1,869", "$5,770", "77/100", "res-8509", "Aug"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestConfigStore(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	writes := 0
	store := &configStore{persist: func() (string, error) {
		writes++
		return "", nil
	}}

	if v, _ := store.Get(client.KeySessionID); v != "" {
		t.Errorf("Get() on empty store = %q", v)
	}
	if err := store.Set(client.KeySessionID, "session-1"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := store.Set(client.KeySessionID, "session-1"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if v, _ := store.Get(client.KeySessionID); v != "session-1" {
		t.Errorf("Get() = %q, want session-1", v)
	}
	if writes != 1 {
		t.Errorf("persist called %d times, want 1 for an unchanged value", writes)
	}

	if err := store.clear(); err != nil {
		t.Fatalf("clear() error = %v", err)
	}
	if v, _ := store.Get(client.KeySessionID); v != "" {
		t.Errorf("Get() after clear = %q", v)
	}
}

func TestRenderInventory(t *testing.T) {
	out := captureOutput(t)
	inv := &providers.Inventory{
		Regions: []string{"eu-west-1", "us-east-1"},
		Instances: []providers.Instance{
			{ID: "i-0e", Name: "batch", Type: "c5.xlarge", State: "running", Region: "eu-west-1"},
			{ID: "i-0a", Name: "i-0a", Type: "t3.micro", State: "stopped", Region: "us-east-1"},
		},
		Failed: map[string]string{"us-west-2": "UnauthorizedOperation"},
	}

	if err := renderInventory(inv); err != nil {
		t.Fatalf("renderInventory() error = %v", err)
	}

	for _, want := range []string{"REGION", "i-0e", "batch", "t3.micro", "stopped", "2 instances across 2 regions", "skipped us-west-2"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q", want)
		}
	}
}
