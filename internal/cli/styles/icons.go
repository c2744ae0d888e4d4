package styles

// Nerd Font icons (requires a Nerd Font to display correctly)
const (
	IconVersion   = "\uf02b" // tag
	IconGitBranch = "\ue725" // git branch
	IconCalendar  = "\uf073" // calendar
	IconGithub    = "\uf09b" // github
	IconGo        = "\ue627" // go gopher
	IconHeart     = "\uf004" // heart

	IconCheck   = "\uf00c" // check
	IconX       = "\uf00d" // x
	IconWarning = "\uf071" // warning
	IconInfo    = "\uf05a" // info

	// Workspaces / artifacts
	IconTrash     = "\uf1f8" // trash
	IconFolder    = "\uf07b" // folder
	IconConfig    = "\ue615" // config
	IconImage     = "\uf1c5" // image file
	IconFile      = "\uf15b" // file
	IconLink      = "\uf0c1" // link
	IconClipboard = "\uf0ea" // paste
	IconCode      = "\uf121" // code
	IconClock     = "\uf017" // clock
	IconRestore   = "\uf0e2" // rotate-left (restore)
)
