package utils

import "crypto/rand"

const roomIDAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateRoomID returns a random alphanumeric room identifier.
// Collision probability at this length is treated as negligible; there is no
// uniqueness check against live rooms.
func GenerateRoomID(length int) string {
	if length <= 0 {
		length = 9
	}
	buf := make([]byte, length)
	// crypto/rand never fails on supported platforms; fall back to a fixed
	// byte just in case so we never return an empty id.
	if _, err := rand.Read(buf); err != nil {
		for i := range buf {
			buf[i] = 'a'
		}
	}
	for i, b := range buf {
		buf[i] = roomIDAlphabet[int(b)%len(roomIDAlphabet)]
	}
	return string(buf)
}
