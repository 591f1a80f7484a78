package styles

// Tip: To find icons use https://github.com/loichyan/nerdfix

var (
	IconCheckList = "\uf0ae"     // nf-fa-tasks
	IconCheck     = "\uf00c"     // nf-fa-check
	IconCircle    = "\uf10c"     // nf-fa-circle_o
	IconHalf      = "\uf042"     // nf-fa-adjust
	IconWallet    = "\U000F0584" // nf-md-wallet
	IconWarning   = "\uf071"     // nf-fa-warning
)
