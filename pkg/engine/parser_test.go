package engine

import (
	"strings"
	"testing"
)

const sampleDoc = `# テスト要件

## 1. プロジェクト概要

- **プロジェクト名**: TestProject

## 2. 機能要件

### FR-001: ユーザー登録

- **優先度**: must
- **説明**: メールでの登録
- **受入条件**:
  - [ ] メールで登録できること
  - [ ] パスワードリセットが可能なこと

### FR-002: 検索機能

- **優先度**: should
- **説明**: キーワード検索

## 3. 非機能要件

### NFR-001: パフォーマンス

- レスポンス: 2秒以内

### NFR-002: セキュリティ

- SSL/TLS必須
`

func TestParse_ProjectName(t *testing.T) {
	doc := Parse(sampleDoc)
	if doc.ProjectName != "TestProject" {
		t.Errorf("ProjectName = %q, want %q", doc.ProjectName, "TestProject")
	}
}

func TestParse_Sections(t *testing.T) {
	doc := Parse(sampleDoc)
	want := []string{"1. プロジェクト概要", "2. 機能要件", "3. 非機能要件"}
	if len(doc.Sections) != len(want) {
		t.Fatalf("Sections = %v, want %v", doc.Sections, want)
	}
	for i, s := range want {
		if doc.Sections[i] != s {
			t.Errorf("Sections[%d] = %q, want %q", i, doc.Sections[i], s)
		}
	}
}

func TestParse_FunctionalRequirement(t *testing.T) {
	doc := Parse(sampleDoc)

	var found bool
	for _, req := range doc.Requirements {
		if req.ID != "FR-001" {
			continue
		}
		found = true
		if req.Title != "ユーザー登録" {
			t.Errorf("Title = %q, want %q", req.Title, "ユーザー登録")
		}
		if req.Priority != "must" {
			t.Errorf("Priority = %q, want %q", req.Priority, "must")
		}
		if len(req.AcceptanceCriteria) != 2 {
			t.Errorf("AcceptanceCriteria = %v, want 2 items", req.AcceptanceCriteria)
		}
		if req.Section != "2. 機能要件" {
			t.Errorf("Section = %q, want %q", req.Section, "2. 機能要件")
		}
		if !req.IsFunctional() {
			t.Error("expected FR-001 to be functional")
		}
	}
	if !found {
		t.Fatal("FR-001 not parsed")
	}
}

func TestParse_NonFunctionalRequirement(t *testing.T) {
	doc := Parse(sampleDoc)

	var found bool
	for _, req := range doc.Requirements {
		if req.ID != "NFR-001" {
			continue
		}
		found = true
		if len(req.AcceptanceCriteria) != 0 {
			t.Errorf("AcceptanceCriteria = %v, want none", req.AcceptanceCriteria)
		}
		if !req.IsNonFunctional() {
			t.Error("expected NFR-001 to be non-functional")
		}
	}
	if !found {
		t.Fatal("NFR-001 not parsed")
	}
}

func TestParse_SectionFlags(t *testing.T) {
	doc := Parse(sampleDoc)

	if !doc.HasNfrSection {
		t.Error("expected NFR section to be detected")
	}
	if !doc.HasSecuritySection {
		t.Error("expected security section to be detected")
	}
	if !doc.HasPerformanceSection {
		t.Error("expected performance section to be detected")
	}
	if doc.HasAvailabilitySection {
		t.Error("availability section should not be detected")
	}
}

func TestParse_TitleWithoutID(t *testing.T) {
	doc := Parse("## 機能要件\n\n### ログイン機能\n\n- **優先度**: must\n")

	if len(doc.Requirements) != 1 {
		t.Fatalf("Requirements = %d, want 1", len(doc.Requirements))
	}
	req := doc.Requirements[0]
	if req.ID != "" {
		t.Errorf("ID = %q, want empty", req.ID)
	}
	if req.Title != "ログイン機能" {
		t.Errorf("Title = %q, want %q", req.Title, "ログイン機能")
	}
}

func TestParse_LineRanges(t *testing.T) {
	content := "## 機能要件\n### FR-001: A\n本文\n### FR-002: B\n本文\n"
	doc := Parse(content)

	if len(doc.Requirements) != 2 {
		t.Fatalf("Requirements = %d, want 2", len(doc.Requirements))
	}
	first := doc.Requirements[0]
	if first.LineStart != 2 || first.LineEnd != 3 {
		t.Errorf("FR-001 range = [%d, %d], want [2, 3]", first.LineStart, first.LineEnd)
	}
	second := doc.Requirements[1]
	if second.LineStart != 4 {
		t.Errorf("FR-002 start = %d, want 4", second.LineStart)
	}
	if second.LineEnd != len(doc.Lines) {
		t.Errorf("FR-002 end = %d, want %d", second.LineEnd, len(doc.Lines))
	}
}

func TestParse_RequirementAt(t *testing.T) {
	content := "## 機能要件\n### FR-001: A\n本文\n### FR-002: B\n本文\n"
	doc := Parse(content)

	if owner := doc.RequirementAt(3); owner == nil || owner.ID != "FR-001" {
		t.Errorf("RequirementAt(3) = %v, want FR-001", owner)
	}
	if owner := doc.RequirementAt(1); owner != nil {
		t.Errorf("RequirementAt(1) = %v, want nil", owner)
	}
}

func TestParse_CRLFNormalized(t *testing.T) {
	doc := Parse("## A\r\n### FR-001: X\r\n")
	if len(doc.Requirements) != 1 {
		t.Fatalf("Requirements = %d, want 1", len(doc.Requirements))
	}
	if strings.Contains(doc.Lines[0], "\r") {
		t.Error("lines should be normalized to LF")
	}
}

func TestParse_EmptyContent(t *testing.T) {
	doc := Parse("")
	if len(doc.Requirements) != 0 || len(doc.Sections) != 0 {
		t.Errorf("empty content should parse to empty document, got %+v", doc)
	}
}

func TestParse_LastProjectNameWins(t *testing.T) {
	doc := Parse("- **プロジェクト名**: First\n- **プロジェクト名**: Second\n")
	if doc.ProjectName != "Second" {
		t.Errorf("ProjectName = %q, want %q", doc.ProjectName, "Second")
	}
}
