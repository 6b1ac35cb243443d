package minecraft

// LaunchAuthData is an interface defining the data required to fill the
// player related launch arguments
type LaunchAuthData interface {
	// GetAccessToken returns the access token. Offline players use the literal "null"
	GetAccessToken() string
	// GetUUID returns the users UUID (strictly required)
	GetUUID() string
	// GetPlayerName returns the users player name (the one that also appears in game)
	GetPlayerName() string
	// GetUserType returns the users user type (legacy, mojang or msa).
	GetUserType() string
}
