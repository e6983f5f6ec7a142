package schema

// systemVariables is the fixed, read-only set addressable as System.<Name>.
var systemVariables = map[string]bool{
	"Activity.Text":             true,
	"Activity.ChannelId":        true,
	"Activity.Name":             true,
	"Bot.Name":                  true,
	"Conversation.Id":           true,
	"User.DisplayName":          true,
	"User.Language":             true,
	"LastMessage.Text":          true,
	"LastMessage.Id":            true,
	"Recognizer.TriggerMessage": true,
	"Error.Message":             true,
	"Error.Code":                true,
}

// IsSystemVariable reports whether name (without the System. prefix) is a
// known system variable.
func IsSystemVariable(name string) bool {
	return systemVariables[name]
}
