package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocalizedTextResolve(t *testing.T) {
	full := LocalizedText{LangCS: "Kozy", LangEN: "Goats"}

	assert.Equal(t, "Kozy", full.Resolve(LangCS))
	assert.Equal(t, "Goats", full.Resolve(LangEN))

	// Unknown tags fall back to Czech.
	assert.Equal(t, "Kozy", full.Resolve("de"))

	csOnly := LocalizedText{LangCS: "Kozy"}
	assert.Equal(t, "Kozy", csOnly.Resolve(LangEN))

	enOnly := LocalizedText{LangEN: "Goats"}
	assert.Equal(t, "Goats", enOnly.Resolve(LangCS))

	var empty LocalizedText
	assert.Equal(t, "", empty.Resolve(LangCS))
}

func TestNormalizeLanguage(t *testing.T) {
	assert.Equal(t, LangCS, NormalizeLanguage(""))
	assert.Equal(t, LangCS, NormalizeLanguage("fr"))
	assert.Equal(t, LangCS, NormalizeLanguage(LangCS))
	assert.Equal(t, LangEN, NormalizeLanguage(LangEN))
}

func TestEventIsFull(t *testing.T) {
	max := 10
	assert.False(t, (&Event{MaxParticipants: &max, CurrentParticipants: 9}).IsFull())
	assert.True(t, (&Event{MaxParticipants: &max, CurrentParticipants: 10}).IsFull())

	// No ceiling means never full.
	assert.False(t, (&Event{CurrentParticipants: 100000}).IsFull())
}

func TestEventDeadlinePassed(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	assert.True(t, (&Event{RegistrationDeadline: &past}).DeadlinePassed(now))
	assert.False(t, (&Event{RegistrationDeadline: &future}).DeadlinePassed(now))
	assert.False(t, (&Event{}).DeadlinePassed(now))

	// A deadline exactly at evaluation time is still open.
	exact := now
	assert.False(t, (&Event{RegistrationDeadline: &exact}).DeadlinePassed(now))
}
