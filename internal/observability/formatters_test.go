package observability

import (
	"bytes"
	"testing"

	"github.com/jonathan/trackflow/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintState(t *testing.T) {
	st := types.NewState()
	st.TrackedJobs["42"] = types.StageConnect
	st.CustomizedResumes["42"] = "resume"
	st.JobContacts["42"] = []types.Contact{{ID: "c1", FirstName: "Jane"}}
	st.ContactDrafts["c1"] = types.OutreachDraft{Body: "hi"}

	var buf bytes.Buffer
	NewPrinter(&buf).PrintState(st)

	out := buf.String()
	assert.Contains(t, out, "TRACK-FLOW STATE")
	assert.Contains(t, out, "42")
	assert.Contains(t, out, "connect")
	assert.Contains(t, out, "resume✓")
}

func TestPrintState_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintState(nil)
	assert.Empty(t, buf.String())
}

func TestPrintAnalyses_SortedByScore(t *testing.T) {
	analyses := map[string]types.JobAnalysis{
		"low":  {KeywordMatchScore: 20, Keywords: []string{"Go"}},
		"high": {KeywordMatchScore: 90, Keywords: []string{"Go", "SQL"}, WhatLooksGood: "great fit"},
	}

	var buf bytes.Buffer
	NewPrinter(&buf).PrintAnalyses(analyses)

	out := buf.String()
	assert.Contains(t, out, "JOB FIT SCORES")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("high")), bytes.Index(buf.Bytes(), []byte("low")),
		"higher score must print first")
	assert.Contains(t, out, "90%")
	assert.Contains(t, out, "great fit")
}

func TestPrintAnalyses_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintAnalyses(nil)
	assert.Empty(t, buf.String())
}
