package usecase

import (
	"strings"
	"time"
)

func utcNow() time.Time { return time.Now().UTC().Truncate(time.Microsecond) }

func patchString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}
