package command_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coldcall/internal/command"
	"coldcall/internal/crm"
)

func TestResolve_NavigationWorksEverywhere(t *testing.T) {
	tests := []struct {
		key  string
		want crm.View
	}{
		{"1", crm.ViewDashboard},
		{"3", crm.ViewLeads},
		{"7", crm.ViewDNC},
		{"9", crm.ViewDead},
		{"f", crm.ViewFollowUps},
		{"c", crm.ViewCallLog},
		{"g", crm.ViewGolfCourses},
		{"t", crm.ViewTrash},
		{"a", crm.ViewAnalytics},
		{"-", crm.ViewEmails},
		{"v", crm.ViewConverted},
		{"$", crm.ViewSales},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			for _, view := range []crm.View{crm.ViewDashboard, crm.ViewLeads, crm.ViewTrash} {
				cmd, ok := command.Resolve(tt.key, view)
				require.True(t, ok)
				assert.Equal(t, command.ActionNavigate, cmd.Action)
				assert.Equal(t, tt.want, cmd.Target)
			}
		})
	}
}

func TestResolve_GlobalBindings(t *testing.T) {
	tests := []struct {
		key  string
		want command.Action
	}{
		{" ", command.ActionTally},
		{"0", command.ActionTally},
		{"2", command.ActionCursorDown},
		{"down", command.ActionCursorDown},
		{"8", command.ActionCursorUp},
		{"up", command.ActionCursorUp},
		{"+", command.ActionAddLead},
		{"=", command.ActionAddLead},
		{"i", command.ActionImport},
		{"x", command.ActionExport},
		{"s", command.ActionSettings},
		{"/", command.ActionHelp},
		{"?", command.ActionHelp},
		{"p", command.ActionListOptions},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			cmd, ok := command.Resolve(tt.key, crm.ViewDashboard)
			require.True(t, ok)
			assert.Equal(t, tt.want, cmd.Action)
		})
	}
}

func TestResolve_LeadOnlyBindings(t *testing.T) {
	for _, key := range []string{"4", "left", "6", "right", "e"} {
		_, ok := command.Resolve(key, crm.ViewCallLog)
		assert.False(t, ok, "key %q must not fire outside lead views", key)

		_, ok = command.Resolve(key, crm.ViewLeads)
		assert.True(t, ok, "key %q must fire in the leads view", key)
	}

	cmd, ok := command.Resolve("4", crm.ViewFollowUps)
	require.True(t, ok)
	assert.Equal(t, command.ActionMoveDNC, cmd.Action)

	cmd, ok = command.Resolve("6", crm.ViewFollowUps)
	require.True(t, ok)
	assert.Equal(t, command.ActionMoveDead, cmd.Action)
}

func TestResolve_PrimaryIsContextual(t *testing.T) {
	for _, view := range []crm.View{
		crm.ViewLeads, crm.ViewDNC, crm.ViewDead, crm.ViewConverted,
		crm.ViewTrash, crm.ViewCallLog, crm.ViewSales,
	} {
		cmd, ok := command.Resolve("enter", view)
		require.True(t, ok, "enter in %s", view)
		assert.Equal(t, command.ActionPrimary, cmd.Action)
	}

	_, ok := command.Resolve("enter", crm.ViewDashboard)
	assert.False(t, ok)
}

func TestResolve_DeleteIsContextual(t *testing.T) {
	for _, key := range []string{"delete", "."} {
		cmd, ok := command.Resolve(key, crm.ViewLeads)
		require.True(t, ok)
		assert.Equal(t, command.ActionDelete, cmd.Action)

		_, ok = command.Resolve(key, crm.ViewDashboard)
		assert.False(t, ok)
	}
}

func TestResolve_FreeLettersSearchInLeadViews(t *testing.T) {
	cmd, ok := command.Resolve("b", crm.ViewLeads)
	require.True(t, ok)
	assert.Equal(t, command.ActionSearchChar, cmd.Action)
	assert.Equal(t, 'b', cmd.Rune)

	cmd, ok = command.Resolve("z", crm.ViewDNC)
	require.True(t, ok)
	assert.Equal(t, command.ActionSearchChar, cmd.Action)

	// Bound letters keep their meaning and never feed the search.
	cmd, ok = command.Resolve("f", crm.ViewLeads)
	require.True(t, ok)
	assert.Equal(t, command.ActionNavigate, cmd.Action)

	// Outside lead views free letters do nothing.
	_, ok = command.Resolve("b", crm.ViewCallLog)
	assert.False(t, ok)
}

func TestResolve_UnknownKeysAreSilent(t *testing.T) {
	for _, key := range []string{"ctrl+r", "tab", "%", "b"} {
		_, ok := command.Resolve(key, crm.ViewDashboard)
		assert.False(t, ok, "key %q", key)
	}
}

func TestResolve_DetailViews(t *testing.T) {
	for _, view := range []crm.View{crm.ViewLeads, crm.ViewFollowUps, crm.ViewGolfCourses} {
		cmd, ok := command.Resolve("5", view)
		require.True(t, ok)
		assert.Equal(t, command.ActionDetail, cmd.Action)
	}

	_, ok := command.Resolve("5", crm.ViewSales)
	assert.False(t, ok)
}
