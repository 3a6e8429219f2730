package pages

// User-facing messages.
const (
	MsgLoginSucceeded   = "Login berhasil!"
	MsgLoginFailed      = "Login gagal. Periksa username dan password Anda."
	MsgCredentialsEmpty = "Username dan password wajib diisi"

	MsgLoadFailed = "Gagal memuat data"

	MsgTransactionCreated = "Transaksi berhasil ditambahkan"
	MsgTransactionUpdated = "Transaksi berhasil diperbarui"
	MsgTransactionSaveErr = "Gagal menyimpan transaksi"
	MsgTransactionDeleted = "Transaksi berhasil dihapus"
	MsgTransactionDelErr  = "Gagal menghapus transaksi"
	MsgDeleteConfirm      = "Yakin ingin menghapus transaksi ini?"

	MsgCategoriesLoadErr = "Gagal memuat kategori"
	MsgCategoryCreated   = "Kategori berhasil ditambahkan"
	MsgCategoryCreateErr = "Gagal menambahkan kategori"

	MsgUsersLoadErr  = "Gagal memuat data user"
	MsgUserCreated   = "User berhasil dibuat"
	MsgUserCreateErr = "Gagal membuat user"

	MsgDownloaded  = "Source code berhasil didownload!"
	MsgDownloadErr = "Gagal mendownload source code"

	MsgImportDone   = "Import selesai"
	MsgImportFailed = "Sebagian transaksi gagal diimpor"
)
