package constants

const (

	// StormSectors is the number of sectors the storm wraps through
	StormSectors int = 18
	// TraitorDealRounds is the number of traitor cards dealt to each player during setup
	TraitorDealRounds int = 4
	// TreacheryDealCount is the number of treachery cards dealt to each player during setup
	TreacheryDealCount int = 1
	// HarkonnenTreacheryDealCount is the number of treachery cards dealt to the Harkonnen player
	HarkonnenTreacheryDealCount int = 2
	// MaxTurns is the number of game turns before the game ends
	MaxTurns int = 15

	// CameraMotionTime is the duration of a scheduled camera motion
	CameraMotionTime float64 = 0.5 // seconds
)
