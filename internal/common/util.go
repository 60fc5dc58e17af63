package common

// Pagination converts a 1-based page into an offset and a limit, clamping the
// size into [1, maxLimit].
func Pagination(page, size, defaultLimit, maxLimit int) (offset int, limit int, normalizedPage int) {
	if page <= 0 {
		page = 1
	}

	if size <= 0 {
		size = defaultLimit
	}

	if maxLimit > 0 && size > maxLimit {
		size = maxLimit
	}

	if size <= 0 {
		size = 1
	}

	return (page - 1) * size, size, page
}
