package schema

// MessageKey names an entry in the validation message dictionary.
type MessageKey string

const (
	UsernameRequired MessageKey = "usernameRequired"
	UsernameMin      MessageKey = "usernameMin"
	UsernameMax      MessageKey = "usernameMax"

	FavLanguageRequired MessageKey = "favLanguageRequired"
	FavLanguageOptions  MessageKey = "favLanguageOptions"

	FavFoodRequired MessageKey = "favFoodRequired"
	FavFoodOptions  MessageKey = "favFoodOptions"

	AgreementRequired MessageKey = "agreementRequired"
	AgreementOptions  MessageKey = "agreementOptions"
)

// Messages maps dictionary keys to the text shown next to a field.
type Messages map[MessageKey]string

// DefaultMessages returns a fresh copy of the built-in dictionary.
func DefaultMessages() Messages {
	return Messages{
		UsernameRequired: "username is required",
		UsernameMin:      "username must be at least 3 characters",
		UsernameMax:      "username cannot exceed 20 characters",

		FavLanguageRequired: "favLanguage is required",
		FavLanguageOptions:  "favLanguage must be either javascript or rust",

		FavFoodRequired: "favFood is required",
		FavFoodOptions:  "favFood must be either broccoli, spaghetti or pizza",

		AgreementRequired: "agreement is required",
		AgreementOptions:  "agreement must be accepted",
	}
}

// Text resolves key, falling back to the key itself so a missing entry is
// still visible instead of silently passing as "valid".
func (m Messages) Text(key MessageKey) string {
	if text, ok := m[key]; ok && text != "" {
		return text
	}
	return string(key)
}

// Merge returns a copy of m with overrides applied. Empty texts are ignored.
func (m Messages) Merge(overrides Messages) Messages {
	out := make(Messages, len(m)+len(overrides))
	for key, text := range m {
		out[key] = text
	}
	for key, text := range overrides {
		if text == "" {
			continue
		}
		out[key] = text
	}
	return out
}
