package auth

import (
	"crypto/md5"
	"errors"
	"regexp"

	"github.com/google/uuid"

	"github.com/iamfatinilham/nuxcraft-pycher/internals/minecraft"
)

// ErrNoPlayerName is returned when no player name is set
var ErrNoPlayerName = errors.New("no player name set")

var validName = regexp.MustCompile(`^[A-Za-z0-9_]{3,16}$`)

// OfflineUUID returns the uuid the game derives for offline players:
// a version 3 uuid built from the md5 sum of "OfflinePlayer:<name>"
func OfflineUUID(name string) uuid.UUID {
	sum := md5.Sum([]byte("OfflinePlayer:" + name))
	sum[6] = (sum[6] & 0x0f) | 0x30
	sum[8] = (sum[8] & 0x3f) | 0x80
	return uuid.UUID(sum)
}

// ValidName reports if name would also be accepted by online servers
func ValidName(name string) bool {
	return validName.MatchString(name)
}

// Offline is a local player without an account
type Offline struct {
	Name string
}

// LaunchAuthData returns the offline launch data of the player
func (o *Offline) LaunchAuthData() (minecraft.LaunchAuthData, error) {
	if o.Name == "" {
		return nil, ErrNoPlayerName
	}
	return &OfflineAuthData{Name: o.Name, UUID: OfflineUUID(o.Name)}, nil
}

// OfflineAuthData is the launch data of an offline player
type OfflineAuthData struct {
	Name string
	UUID uuid.UUID
}

func (a *OfflineAuthData) GetAccessToken() string { return "null" }
func (a *OfflineAuthData) GetPlayerName() string  { return a.Name }
func (a *OfflineAuthData) GetUUID() string        { return a.UUID.String() }
func (a *OfflineAuthData) GetUserType() string    { return "mojang" }
