package editcontrol

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sketchedit/internal/domain"
)

func groupNameApplier(got *string) Applier {
	return ApplierFunc(func(ctx Context, text string) error {
		name, err := ParseName(text)
		if err != nil {
			return err
		}
		*got = name
		return nil
	})
}

func TestEmptyGroupNameKeepsControlOpen(t *testing.T) {
	c := New()
	var got string
	c.Show(Context{Meaning: GroupName, Group: 2}, domain.Point2d{X: 4, Y: 5}, "", groupNameApplier(&got))

	_, out := c.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, Rejected, out)
	assert.True(t, c.Active())
	assert.ErrorIs(t, c.Err(), ErrValidation)
	assert.Empty(t, got)

	_, out = c.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("sketch")})
	assert.Equal(t, Edited, out)
	assert.NoError(t, c.Err())

	_, out = c.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, Submitted, out)
	assert.False(t, c.Active())
	assert.Equal(t, "sketch", got)
}

func TestEscapeCancelsWithoutApplying(t *testing.T) {
	c := New()
	applied := false
	c.Show(Context{Meaning: GridSpacing}, domain.Point2d{}, "5", ApplierFunc(func(Context, string) error {
		applied = true
		return nil
	}))

	_, out := c.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, Cancelled, out)
	assert.False(t, c.Active())
	assert.False(t, applied)
}

func TestShowPrefillsValue(t *testing.T) {
	c := New()
	c.Show(Context{Meaning: ConstraintValue, Constraint: 7}, domain.Point2d{X: 1, Y: 2}, "12.50", nil)
	assert.Equal(t, "12.50", c.Value())
	assert.Equal(t, domain.Point2d{X: 1, Y: 2}, c.At())
	assert.Equal(t, ConstraintValue, c.Context().Meaning)
	assert.Contains(t, c.View(), "12.50")
}

func TestNonValidationErrorClosesControl(t *testing.T) {
	c := New()
	boom := errors.New("boom")
	c.Show(Context{Meaning: StyleWidth}, domain.Point2d{}, "1", ApplierFunc(func(Context, string) error { return boom }))

	err := c.Submit()
	assert.ErrorIs(t, err, boom)
	assert.False(t, c.Active())
}

func TestInvalidateClosesControlForDeletedTarget(t *testing.T) {
	c := New()
	c.Show(Context{Meaning: ConstraintValue, Constraint: 3}, domain.Point2d{}, "1", nil)

	other := domain.NewHandleSet()
	other.Constraints[4] = struct{}{}
	assert.False(t, c.Invalidate(other))
	assert.True(t, c.Active())

	deleted := domain.NewHandleSet()
	deleted.Constraints[3] = struct{}{}
	assert.True(t, c.Invalidate(deleted))
	assert.False(t, c.Active())
}

func TestInactiveControlIgnoresMessages(t *testing.T) {
	c := New()
	_, out := c.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, Ignored, out)
	require.NoError(t, c.Submit())
	assert.Empty(t, c.View())
}
