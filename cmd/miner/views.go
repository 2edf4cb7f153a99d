package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/rxtech-lab/replay-miner/internal/contract"
	"github.com/rxtech-lab/replay-miner/internal/miner"
	"github.com/rxtech-lab/replay-miner/pkg/errors"
)

// Form fields.
const (
	fieldContract = iota
	fieldMode
	fieldDepth
	fieldStopLoss
	fieldTimeout
	fieldCount
)

var fieldLabels = [fieldCount]string{
	fieldContract: "Contract",
	fieldMode:     "Mode (deep|single)",
	fieldDepth:    "Max contracts back",
	fieldStopLoss: "Stop-loss limit",
	fieldTimeout:  "Probe timeout (s)",
}

// NewFormInputs creates the session form prefilled from config.
func NewFormInputs(config miner.Config) []textinput.Model {
	inputs := make([]textinput.Model, fieldCount)

	for i := range inputs {
		ti := textinput.New()
		ti.CharLimit = 32
		ti.Width = 24
		ti.Prompt = "> "
		inputs[i] = ti
	}

	inputs[fieldContract].Placeholder = "MNQ 03-26"
	inputs[fieldContract].ShowSuggestions = true
	inputs[fieldContract].SetSuggestions(contract.Suggestions())
	inputs[fieldContract].SetValue(config.StartingContract)

	inputs[fieldMode].SetValue(string(config.Mode))
	inputs[fieldDepth].SetValue(strconv.Itoa(config.MaxContractsBack))
	inputs[fieldStopLoss].SetValue(strconv.Itoa(config.StopLossLimit))
	inputs[fieldTimeout].SetValue(strconv.FormatFloat(config.ProbeTimeoutSeconds, 'f', -1, 64))

	inputs[fieldContract].Focus()

	return inputs
}

// BuildSessionConfig applies the form to base and validates the result.
// Non-numeric values are rejected rather than defaulted.
func BuildSessionConfig(base miner.Config, inputs []textinput.Model) (miner.Config, error) {
	config := base
	config.StartingContract = strings.ToUpper(strings.TrimSpace(inputs[fieldContract].Value()))
	config.Mode = miner.Mode(strings.ToLower(strings.TrimSpace(inputs[fieldMode].Value())))

	depth, err := strconv.Atoi(strings.TrimSpace(inputs[fieldDepth].Value()))
	if err != nil {
		return miner.Config{}, errors.Newf(errors.ErrCodeInvalidConfiguration, "max contracts back must be a whole number, got %q", inputs[fieldDepth].Value())
	}

	stopLoss, err := strconv.Atoi(strings.TrimSpace(inputs[fieldStopLoss].Value()))
	if err != nil {
		return miner.Config{}, errors.Newf(errors.ErrCodeInvalidConfiguration, "stop-loss limit must be a whole number, got %q", inputs[fieldStopLoss].Value())
	}

	timeout, err := strconv.ParseFloat(strings.TrimSpace(inputs[fieldTimeout].Value()), 64)
	if err != nil {
		return miner.Config{}, errors.Newf(errors.ErrCodeInvalidConfiguration, "probe timeout must be a number, got %q", inputs[fieldTimeout].Value())
	}

	config.MaxContractsBack = depth
	config.StopLossLimit = stopLoss
	config.ProbeTimeoutSeconds = timeout

	if err := config.Validate(); err != nil {
		return miner.Config{}, err
	}

	return config, nil
}

// NewSpinner creates the activity spinner shown while mining.
func NewSpinner() spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = ProgressStyle

	return s
}

// FormatSummaryView renders the session result for the done screen.
func FormatSummaryView(summary miner.Summary) string {
	var s strings.Builder

	status := "Mining complete"
	if summary.Cancelled {
		status = "Session cancelled"
	}

	s.WriteString(fmt.Sprintf("%s. Total: %d days\n\n", status, summary.SuccessCount))

	for _, c := range summary.Contracts {
		s.WriteString(fmt.Sprintf("  %-10s %d/%d days", c.Contract, c.Succeeded, c.Probes))

		if c.StoppedOut {
			s.WriteString("  (stop-loss)")
		}

		if c.Aborted {
			s.WriteString("  (aborted)")
		}

		s.WriteString("\n")
	}

	return s.String()
}

// tail returns the last n lines.
func tail(lines []string, n int) []string {
	if n <= 0 || len(lines) <= n {
		return lines
	}

	return lines[len(lines)-n:]
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}

	return false
}
