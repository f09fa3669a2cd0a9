// Package cipher implements the caesar shift used to obscure stored account
// passwords. It is a reversible transform, not a security mechanism.
package cipher

// AccountShift is the fixed shift applied to stored account passwords.
const AccountShift = 3

// Encrypt rotates every letter in text by shift positions within its own
// case's alphabet. Non-letters pass through unchanged.
func Encrypt(text string, shift int) string {
	return rotate(text, shift)
}

// Decrypt reverses Encrypt for the same shift.
func Decrypt(text string, shift int) string {
	return rotate(text, -shift)
}

func rotate(text string, shift int) string {
	out := make([]rune, 0, len(text))
	for _, char := range text {
		switch {
		case 'a' <= char && char <= 'z':
			out = append(out, 'a'+mod26(int(char-'a')+shift))
		case 'A' <= char && char <= 'Z':
			out = append(out, 'A'+mod26(int(char-'A')+shift))
		default:
			out = append(out, char)
		}
	}
	return string(out)
}

func mod26(n int) rune {
	return rune(((n % 26) + 26) % 26)
}
