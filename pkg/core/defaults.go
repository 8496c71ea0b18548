package core

// IntOr returns *v, or def when v is nil.
func IntOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

// FloatOr returns *v, or def when v is nil.
func FloatOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

// BoolOr returns *v, or def when v is nil.
func BoolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

// StringOr returns *v, or def when v is nil.
func StringOr(v *string, def string) string {
	if v == nil {
		return def
	}
	return *v
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
