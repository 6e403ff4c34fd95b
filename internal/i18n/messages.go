package i18n

var messages = map[string]map[string]string{
	LocaleID: {
		"notify.cart_added":          "%s ditambahkan ke keranjang",
		"notify.consultation_booked": "Konsultasi dengan %s pada %s pukul %s berhasil dipesan.",
		"notify.checkout_success":    "Pesanan berhasil dibuat! Terima kasih telah berbelanja.",

		"error.bad_request":                "Permintaan tidak valid",
		"error.unauthorized":               "Sesi tidak valid, silakan mulai sesi baru",
		"error.forbidden":                  "Akses ditolak",
		"error.not_found":                  "Data tidak ditemukan",
		"error.internal_error":             "Terjadi kesalahan pada server",
		"error.rate_limited":               "Terlalu banyak percobaan, coba lagi dalam %d detik",
		"error.rate_limit_unavailable":     "Layanan pembatas permintaan tidak tersedia",
		"error.session_not_found":          "Sesi tidak ditemukan atau sudah kedaluwarsa",
		"error.product_not_found":          "Produk tidak ditemukan",
		"error.expert_not_found":           "Pakar tidak ditemukan",
		"error.article_not_found":          "Artikel tidak ditemukan",
		"error.booking_not_open":           "Tidak ada pemesanan konsultasi yang sedang dibuka",
		"error.booking_invalid_transition": "Langkah pemesanan tidak valid",
		"error.consultation_kind_invalid":  "Jenis konsultasi tidak didukung",
		"error.expert_offline":             "Pakar sedang offline, pilih konsultasi terjadwal",
		"error.schedule_incomplete":        "Pilih tanggal dan jam terlebih dahulu",
		"error.slot_unavailable":           "Tanggal atau jam tidak tersedia",
		"error.role_invalid":               "Peran tidak valid",
		"error.session_token_invalid":      "Token sesi tidak valid",
		"error.overlay_invalid":            "Jenis tampilan tidak valid",
		"error.tab_invalid":                "Tab tidak valid",
		"error.login_too_many":             "Terlalu banyak percobaan masuk, coba lagi dalam %d detik",
		"error.auth_header_missing":        "Header otorisasi tidak ditemukan",
		"error.auth_header_invalid":        "Format header otorisasi tidak valid",
	},
	LocaleEN: {
		"notify.cart_added":          "%s added to cart",
		"notify.consultation_booked": "Consultation with %s on %s at %s has been booked.",
		"notify.checkout_success":    "Order placed! Thank you for shopping.",

		"error.bad_request":                "Invalid request",
		"error.unauthorized":               "Invalid session, please start a new one",
		"error.forbidden":                  "Access denied",
		"error.not_found":                  "Not found",
		"error.internal_error":             "Internal server error",
		"error.rate_limited":               "Too many attempts, retry in %d seconds",
		"error.rate_limit_unavailable":     "Rate limiter unavailable",
		"error.session_not_found":          "Session not found or expired",
		"error.product_not_found":          "Product not found",
		"error.expert_not_found":           "Expert not found",
		"error.article_not_found":          "Article not found",
		"error.booking_not_open":           "No consultation booking is open",
		"error.booking_invalid_transition": "Invalid booking step",
		"error.consultation_kind_invalid":  "Unsupported consultation kind",
		"error.expert_offline":             "Expert is offline, choose a scheduled consultation",
		"error.schedule_incomplete":        "Pick a date and time first",
		"error.slot_unavailable":           "Date or time is not available",
		"error.role_invalid":               "Invalid role",
		"error.session_token_invalid":      "Invalid session token",
		"error.overlay_invalid":            "Invalid overlay kind",
		"error.tab_invalid":                "Invalid tab",
		"error.login_too_many":             "Too many login attempts, retry in %d seconds",
		"error.auth_header_missing":        "Authorization header is missing",
		"error.auth_header_invalid":        "Invalid authorization header format",
	},
}
