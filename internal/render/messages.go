package render

import (
	"embed"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed catalog/active.en.toml
var catalogFS embed.FS

// Messages resolves operation outcomes to localized user-facing text.
// The English catalog is embedded; additional languages fall back to
// English for any missing message.
type Messages struct {
	localizer *i18n.Localizer
}

// NewMessages builds the catalog and selects lang as the preferred
// language.
func NewMessages(lang string) (*Messages, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	data, err := catalogFS.ReadFile("catalog/active.en.toml")
	if err != nil {
		return nil, fmt.Errorf("read message catalog: %w", err)
	}
	if _, err := bundle.ParseMessageFileBytes(data, "active.en.toml"); err != nil {
		return nil, fmt.Errorf("parse message catalog: %w", err)
	}

	return &Messages{
		localizer: i18n.NewLocalizer(bundle, lang, language.English.String()),
	}, nil
}

func (m *Messages) localize(id string, data map[string]any) string {
	return m.localizer.MustLocalize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
}

// Joined confirms an enqueue and reports the assigned position.
func (m *Messages) Joined(position int) string {
	return m.localize("Joined", map[string]any{"Position": position})
}

// AlreadyQueued rejects a duplicate enqueue.
func (m *Messages) AlreadyQueued() string {
	return m.localize("AlreadyQueued", nil)
}

// Withdrawn confirms a self-service removal.
func (m *Messages) Withdrawn() string {
	return m.localize("Withdrawn", nil)
}

// NotQueued reports that the requester holds no entry.
func (m *Messages) NotQueued() string {
	return m.localize("NotQueued", nil)
}

// Position reports the requester's current 1-based position.
func (m *Messages) Position(position int) string {
	return m.localize("Position", map[string]any{"Position": position})
}

// EmptyQueue reports an empty listing.
func (m *Messages) EmptyQueue() string {
	return m.localize("EmptyQueue", nil)
}

// Removed confirms an operator removal.
func (m *Messages) Removed(requesterID string) string {
	return m.localize("Removed", map[string]any{"RequesterID": requesterID})
}

// EntryNotFound reports an operator removal of an absent entry.
func (m *Messages) EntryNotFound(requesterID string) string {
	return m.localize("EntryNotFound", map[string]any{"RequesterID": requesterID})
}

// InvalidRequester reports a malformed requester id.
func (m *Messages) InvalidRequester() string {
	return m.localize("InvalidRequester", nil)
}

// StorageFault reports an internal failure without leaking detail.
func (m *Messages) StorageFault() string {
	return m.localize("StorageFault", nil)
}

// NotAuthorized reports an operator-only command used by someone else.
func (m *Messages) NotAuthorized() string {
	return m.localize("NotAuthorized", nil)
}
