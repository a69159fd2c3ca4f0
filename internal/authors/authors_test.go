// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package authors

import (
	"reflect"
	"testing"

	"github.com/pdiddy/manuscript-engine/pkg/types"
)

func para(text string) types.Paragraph {
	return types.Paragraph{Text: text, Style: "Normal"}
}

func TestResolveStructuredBlock(t *testing.T) {
	paragraphs := []types.Paragraph{
		para("Hybrid Quantum Classifiers"),
		para("Name: Akshit Harsola ; Riya Deshmukh"),
		para("Department: cse ; it"),
		para("Institution: Medicaps University ; IIT Indore"),
		para("Mail: akshit@medicaps.ac.in* ; riya@iiti.ac.in"),
	}

	info := Resolve(paragraphs, 0)
	if info == nil {
		t.Fatal("Resolve = nil, want structured block")
	}
	if !info.StructuredBlockParsed {
		t.Error("StructuredBlockParsed should be true")
	}

	wantNames := []string{"Akshit Harsola", "Riya Deshmukh"}
	if !reflect.DeepEqual(info.Names, wantNames) {
		t.Errorf("Names = %v, want %v", info.Names, wantNames)
	}
	wantDepts := []string{"cse", "it"}
	if !reflect.DeepEqual(info.Departments, wantDepts) {
		t.Errorf("Departments = %v, want %v", info.Departments, wantDepts)
	}
	wantEmails := []string{"akshit@medicaps.ac.in", "riya@iiti.ac.in"}
	if !reflect.DeepEqual(info.Emails, wantEmails) {
		t.Errorf("Emails = %v, want %v (star must be stripped)", info.Emails, wantEmails)
	}
	if !reflect.DeepEqual(info.CorrespondingIndices, []int{0}) {
		t.Errorf("CorrespondingIndices = %v, want [0]", info.CorrespondingIndices)
	}
	if info.Affiliations[1] != "IIT Indore" {
		t.Errorf("Affiliations[1] = %q, want IIT Indore", info.Affiliations[1])
	}
}

func TestResolveStructuredPadsShortFields(t *testing.T) {
	paragraphs := []types.Paragraph{
		para("Name: A One ; B Two ; C Three"),
		para("Mail: a@x.com"),
	}

	info := Resolve(paragraphs, -1)
	if info == nil {
		t.Fatal("Resolve = nil")
	}
	if len(info.Names) != 3 {
		t.Fatalf("Names = %v", info.Names)
	}
	// Missing emails pad out with blanks rather than dropping authors.
	if len(info.Emails) != 3 || info.Emails[1] != "" || info.Emails[2] != "" {
		t.Errorf("Emails = %v, want padded to 3", info.Emails)
	}
	if len(info.Departments) != 3 {
		t.Errorf("Departments = %v, want padded to 3", info.Departments)
	}
}

func TestResolveStructuredFirstLabelWins(t *testing.T) {
	paragraphs := []types.Paragraph{
		para("Name: Real Author"),
		para("Name: Imposter Author"),
	}

	info := Resolve(paragraphs, -1)
	if info == nil {
		t.Fatal("Resolve = nil")
	}
	if len(info.Names) != 1 || info.Names[0] != "Real Author" {
		t.Errorf("Names = %v, want first label occurrence only", info.Names)
	}
}

func TestResolveFallback(t *testing.T) {
	paragraphs := []types.Paragraph{
		para("An Important Paper Title"),
		para("Jane Roe, John Doe and Alex Quux"),
		para("jane@uni.edu, john@uni.edu"),
	}

	info := Resolve(paragraphs, 0)
	if info == nil {
		t.Fatal("Resolve = nil, want fallback authors")
	}
	if info.StructuredBlockParsed {
		t.Error("StructuredBlockParsed should be false for fallback")
	}
	wantNames := []string{"Jane Roe", "John Doe", "Alex Quux"}
	if !reflect.DeepEqual(info.Names, wantNames) {
		t.Errorf("Names = %v, want %v", info.Names, wantNames)
	}
	if info.Emails[0] != "jane@uni.edu" || info.Emails[1] != "john@uni.edu" {
		t.Errorf("Emails = %v", info.Emails)
	}
	// Third author has no email; padding keeps indexes aligned.
	if len(info.Emails) != 3 || info.Emails[2] != "" {
		t.Errorf("Emails = %v, want padded to 3", info.Emails)
	}
}

func TestResolveFallbackRejectsProse(t *testing.T) {
	paragraphs := []types.Paragraph{
		para("Title Here"),
		para("This document describes the overall architecture of the system in detail."),
	}

	if info := Resolve(paragraphs, 0); info != nil {
		t.Errorf("Resolve = %+v, want nil for prose after title", info)
	}
}

func TestResolveNoAuthors(t *testing.T) {
	if info := Resolve([]types.Paragraph{para("Only a title")}, 0); info != nil {
		t.Errorf("Resolve = %+v, want nil", info)
	}
}

func TestLooksLikeNameLine(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"Jane Roe, John Doe", true},
		{"Jane Roe and John Doe", true},
		{"Abstract: something", false},
		{"Section 2 results", false},
		{"jane@uni.edu", false},
		{"lowercase name", false},
	}
	for _, tt := range tests {
		if got := looksLikeNameLine(tt.text); got != tt.want {
			t.Errorf("looksLikeNameLine(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestDepartmentExpansion(t *testing.T) {
	depts := DefaultDepartments()

	tests := []struct {
		code     string
		template types.Template
		want     string
	}{
		{"cse", types.TemplateIEEE, "Computer Science"},
		{"cse", types.TemplateACM, "Computer Science and Engineering"},
		{"cse", types.TemplateSpringer, "Computer Science and Engineering"},
		{"it", types.TemplateIEEE, "Information Technology"},
		{"unknown-dept", types.TemplateIEEE, "unknown-dept"},
	}

	for _, tt := range tests {
		if got := depts.Expand(tt.code, tt.template); got != tt.want {
			t.Errorf("Expand(%q, %s) = %q, want %q", tt.code, tt.template, got, tt.want)
		}
	}
}
