package formatter

import (
	"strings"
	"testing"
	"time"

	"backlog/internal/domain"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIssue(title string, status domain.IssueStatus) *domain.Issue {
	now := time.Now().UTC()
	return &domain.Issue{
		ID:         "id-" + title,
		ProjectID:  "p1",
		Title:      title,
		Status:     status,
		Priority:   domain.PriorityMedium,
		ReporterID: "u1",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func TestFormatBoard_AllColumnsPresent(t *testing.T) {
	columns := map[domain.IssueStatus][]*domain.Issue{
		domain.StatusTodo:       {testIssue("Write docs", domain.StatusTodo)},
		domain.StatusInProgress: {testIssue("Fix login", domain.StatusInProgress)},
	}

	out := FormatBoard(columns, -1, -1)

	assert.Contains(t, out, "Todo")
	assert.Contains(t, out, "In Progress")
	assert.Contains(t, out, "In Review")
	assert.Contains(t, out, "Done")
	assert.Contains(t, out, "Write docs")
	assert.Contains(t, out, "Fix login")
	assert.Contains(t, out, "empty", "empty columns are marked")
}

func TestFormatBoard_SelectionMarker(t *testing.T) {
	columns := map[domain.IssueStatus][]*domain.Issue{
		domain.StatusTodo: {
			testIssue("First", domain.StatusTodo),
			testIssue("Second", domain.StatusTodo),
		},
	}

	focused := FormatBoard(columns, 0, 1)
	assert.Contains(t, focused, "▸", "selected issue carries a marker")

	static := FormatBoard(columns, -1, -1)
	assert.NotContains(t, static, "▸")
}

func TestFormatBoard_CountsPerColumn(t *testing.T) {
	columns := map[domain.IssueStatus][]*domain.Issue{
		domain.StatusDone: {
			testIssue("A", domain.StatusDone),
			testIssue("B", domain.StatusDone),
		},
	}

	out := FormatBoard(columns, -1, -1)
	assert.Contains(t, out, "(2)")
	assert.Contains(t, out, "(0)")
}

func TestRenderTable_Alignment(t *testing.T) {
	out := RenderTable(
		[]string{"ID", "Title"},
		[][]string{
			{"1", "short"},
			{"2", "a much longer title"},
		},
	)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4, "header, separator, two rows")

	assert.Contains(t, lines[2], "short")
	assert.Contains(t, lines[3], "a much longer title")

	// The separator spans every column at its widest cell plus the gap.
	wantWidth := 1 + 2 + lipgloss.Width("a much longer title")
	assert.Equal(t, wantWidth, lipgloss.Width(lines[1]))
}

func TestRenderTable_EmptyHeaders(t *testing.T) {
	assert.Equal(t, "", RenderTable(nil, nil))
}

func TestStatusPill(t *testing.T) {
	assert.Contains(t, StatusPill(domain.StatusTodo), "Todo")
	assert.Contains(t, StatusPill(domain.StatusInProgress), "In Progress")
	assert.Contains(t, StatusPill(domain.StatusInReview), "In Review")
	assert.Contains(t, StatusPill(domain.StatusDone), "Done")
	assert.Contains(t, StatusPill(domain.IssueStatus("ODD")), "ODD")
}

func TestPriorityBadge(t *testing.T) {
	assert.Contains(t, PriorityBadge(domain.PriorityUrgent), "URGENT")
	assert.Contains(t, PriorityBadge(domain.PriorityLow), "Low")
}
