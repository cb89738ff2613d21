package model

import "testing"

func TestJobStatus_IsTerminal(t *testing.T) {
	tests := []struct {
		status   JobStatus
		expected bool
	}{
		{StatusSubmitted, false},
		{StatusExtractingMetadata, false},
		{StatusSelectingFormat, false},
		{StatusDirectReady, false},
		{StatusDownloading, false},
		{StatusMerging, false},
		{StatusStreaming, false},
		{StatusCompleted, true},
		{StatusError, true},
	}

	for _, test := range tests {
		result := test.status.IsTerminal()
		if result != test.expected {
			t.Errorf("JobStatus(%s).IsTerminal() = %v, expected %v", test.status, result, test.expected)
		}
	}
}

func TestJobStatus_CanTransitionTo_Forward(t *testing.T) {
	tests := []struct {
		from     JobStatus
		to       JobStatus
		expected bool
	}{
		{StatusSubmitted, StatusExtractingMetadata, true},
		{StatusExtractingMetadata, StatusSelectingFormat, true},
		{StatusSelectingFormat, StatusDownloading, true},
		{StatusSelectingFormat, StatusDirectReady, true},
		{StatusDirectReady, StatusDownloading, true},
		{StatusDownloading, StatusMerging, true},
		{StatusDownloading, StatusStreaming, true},
		{StatusDownloading, StatusCompleted, true},
		{StatusStreaming, StatusCompleted, true},

		// No cycles or self-transitions
		{StatusDownloading, StatusExtractingMetadata, false},
		{StatusDownloading, StatusDownloading, false},
		{StatusCompleted, StatusDownloading, false},
	}

	for _, test := range tests {
		result := test.from.CanTransitionTo(test.to)
		if result != test.expected {
			t.Errorf("CanTransitionTo(%s -> %s) = %v, expected %v", test.from, test.to, result, test.expected)
		}
	}
}

func TestJobStatus_CanTransitionTo_Error(t *testing.T) {
	nonTerminal := []JobStatus{
		StatusSubmitted,
		StatusExtractingMetadata,
		StatusSelectingFormat,
		StatusDirectReady,
		StatusDownloading,
		StatusMerging,
		StatusStreaming,
	}

	for _, status := range nonTerminal {
		if !status.CanTransitionTo(StatusError) {
			t.Errorf("Expected %s to allow transition to error", status)
		}
	}

	if StatusCompleted.CanTransitionTo(StatusError) {
		t.Error("Expected completed to reject transition to error")
	}
	if StatusError.CanTransitionTo(StatusDownloading) {
		t.Error("Expected error to reject further transitions")
	}
}

func TestJobStatus_String(t *testing.T) {
	status := StatusDownloading
	expected := "downloading"
	result := status.String()

	if result != expected {
		t.Errorf("JobStatus.String() = %s, expected %s", result, expected)
	}
}
