package buddies

import (
	"encoding/base64"
	"fmt"
	"hash/fnv"
	"net/url"
	"strings"
	"unicode"
)

// avatarPalette holds the background colors for generated avatars.
var avatarPalette = []string{
	"#FF6363", "#FFC531", "#59D499", "#56C2FF", "#CF2F98",
	"#FF8F40", "#8E8E93", "#A27EF4", "#2BBBAD", "#E86F51",
}

// AvatarURL returns the avatar reference for a buddy.
//
// With a Twitter/X handle it is an unavatar.io URL that falls back to a
// boringavatars image for the same handle; without one it is a generated
// initials icon.
func AvatarURL(name, handle string) string {
	if handle != "" {
		h := url.PathEscape(handle)
		return "https://unavatar.io/twitter/" + h +
			"?fallback=https://source.boringavatars.com/beam/" + h
	}
	return InitialsAvatar(name)
}

// InitialsAvatar renders a round SVG with up to two initials of name on a
// background picked from the name's hash, as a data: URI.
func InitialsAvatar(name string) string {
	hash := fnv.New32a()
	hash.Write([]byte(name))
	bg := avatarPalette[hash.Sum32()%uint32(len(avatarPalette))]

	svg := fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="64" height="64" viewBox="0 0 64 64">`+
			`<circle cx="32" cy="32" r="32" fill="%s"/>`+
			`<text x="32" y="32" dy=".35em" text-anchor="middle" font-family="sans-serif" font-size="26" fill="#FFFFFF">%s</text>`+
			`</svg>`,
		bg, initials(name),
	)
	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svg))
}

func initials(name string) string {
	var out []rune
	for _, word := range strings.Fields(name) {
		r := []rune(word)[0]
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		out = append(out, unicode.ToUpper(r))
		if len(out) == 2 {
			break
		}
	}
	if len(out) == 0 {
		return "?"
	}
	return string(out)
}
