package strx

// Coalesce returns s if non-empty, otherwise d.
func Coalesce(s, d string) string {
	if s == "" {
		return d
	}
	return s
}

// Utoa renders n in base 10 without pulling in strconv (flash-friendly on
// MCU targets).
func Utoa(n uint) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// Itoa is Utoa with a sign.
func Itoa(n int) string {
	if n < 0 {
		return "-" + Utoa(uint(-n))
	}
	return Utoa(uint(n))
}
