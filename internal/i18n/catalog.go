package i18n

var catalogs = map[string]map[string]string{
	LocaleEnglish: {
		"dashboard":               "Dashboard",
		"masterDB":                "Master Database",
		"submittedDB":             "Submitted Database",
		"userManagement":          "User Management",
		"search":                  "Search...",
		"logout":                  "Logout",
		"role":                    "Role",
		"loading":                 "Loading...",
		"close":                   "Close",
		"cancel":                  "Cancel",
		"save":                    "Save",
		"delete":                  "Delete",
		"edit":                    "Edit",
		"add":                     "Add",
		"upload":                  "Upload",
		"download":                "Download",
		"deviceOverview":          "Device Overview",
		"loadingDevices":          "Loading devices...",
		"noDevicesRegistered":     "No devices are registered for this account.",
		"noActivityToday":         "No activity recorded today.",
		"highErrorRate":           "High Error Rate",
		"warning":                 "Warning",
		"customizeDashboard":      "Customize Dashboard",
		"contextFieldsMissing":    "Map the device and date fields in the dashboard settings to see widget data.",
		"createNewUser":           "Create New User",
		"loadingUsers":            "Loading...",
		"productMasterList":       "Product Master List",
		"csvBulkRegistration":     "CSV Bulk Registration",
		"newRegistration":         "New Registration",
		"searchPlaceholder":       "Search by product number, model, serial number...",
		"dataList":                "Data List",
		"creationDeletionHistory": "Creation/Deletion History",
		"deleteSelected":          "Delete Selected",
		"loadingHistory":          "Loading history...",
		"noDataFound":             "No data found.",
		"noHistoryFound":          "No history found.",
		"failedToLoadMasterDB":    "Failed to load master database.",
		"csvImportTitle":          "CSV Import to Master Database",
		"uploadCSV":               "Upload CSV",
		"details":                 "Details",
		"noImageUploaded":         "No image uploaded.",
		"productImage":            "Product Image",
		"updateImage":             "Update Image",
		"uploadImage":             "Upload Image",
		"ok":                      "OK",
		"readOnly":                "Read Only - No edit permission",
		"changeHistory":           "Change History",
		"noChanges":               "No changes to save.",
		"pageNotFound":            "Page not found",
		"login":                   "Login",
		"loginFailed":             "Login failed. Check your username and password.",
		"loadFailed":              "Failed to load data.",
		"firstName":               "First Name",
		"lastName":                "Last Name",
		"email":                   "Email",
		"username":                "Username",
		"password":                "Password",
		"updateSuccess":           "Update successful",
		"updateFailed":            "User update failed",
		"deleteSuccess":           "Delete completed",
		"deleteFailed":            "Delete failed",
		"noAccess":                "No access permission.",
		"fillAllFields":           "Please fill all fields",
		"userCreateSuccess":       "User creation successful",
		"createError":             "Creation error",
		"passwordMinLength":       "Password must be at least 6 characters",
		"passwordMismatch":        "Passwords do not match",
		"passwordResetSuccess":    "Password reset successful",
		"usernameTakenTenant":     "This username already exists in this company's database",
		"usernameTakenMaster":     "This username already exists in a master account",
		"usernameTakenOther":      "This username is already used by another company",
		"loadingData":             "Loading...",
		"dataLoadError":           "Data loading error",
		"noDataMessage":           "No data found",
		"selectColumns":           "Select at least one column to export.",
		"csvExportFailed":         "CSV export failed",
		"fontLoadFailed":          "Failed to load Japanese font into PDF. PDF will use standard font.",
		"pdfExportFailed":         "PDF export failed",
		"allActions":              "All Actions",
		"submittedLog":            "Submitted Log",
		"startDate":               "Start Date",
		"endDate":                 "End Date",
		"action":                  "Action",
		"productNumber":           "Product Number",
		"applyFilter":             "Apply Filter",
		"itemsPerPage":            "Items per page",
		"csvExport":               "CSV Export",
		"pdfExport":               "PDF Export",
		"noData":                  "No Data",
		"noDataDescription":       "No logs match the current criteria.",
		"filters":                 "Filters",
		"selectColumnsToExport":   "Select columns to export",
		"executeExport":           "Execute Export",
	},
	LocaleJapanese: {
		"dashboard":               "ダッシュボード",
		"masterDB":                "マスターデータベース",
		"submittedDB":             "送信済みデータベース",
		"userManagement":          "ユーザー管理",
		"search":                  "検索...",
		"logout":                  "ログアウト",
		"role":                    "役割",
		"loading":                 "読み込み中...",
		"close":                   "閉じる",
		"cancel":                  "キャンセル",
		"save":                    "保存",
		"delete":                  "削除",
		"edit":                    "編集",
		"add":                     "追加",
		"upload":                  "アップロード",
		"download":                "ダウンロード",
		"deviceOverview":          "デバイス概要",
		"loadingDevices":          "デバイスを読み込み中...",
		"noDevicesRegistered":     "このアカウントにはデバイスが登録されていません。",
		"noActivityToday":         "本日の活動記録はありません。",
		"highErrorRate":           "エラー率が高い",
		"warning":                 "警告",
		"customizeDashboard":      "ダッシュボードをカスタマイズ",
		"contextFieldsMissing":    "ウィジェットデータを表示するには、設定でデバイスと日付のフィールドを指定してください。",
		"createNewUser":           "新規ユーザー作成",
		"loadingUsers":            "読み込み中...",
		"productMasterList":       "製品マスタ一覧",
		"csvBulkRegistration":     "CSV一括登録",
		"newRegistration":         "新規登録",
		"searchPlaceholder":       "品番、モデル、背番号などで検索...",
		"dataList":                "データ一覧",
		"creationDeletionHistory": "作成・削除履歴",
		"deleteSelected":          "選択した項目を削除",
		"loadingHistory":          "履歴を読み込み中...",
		"noDataFound":             "データが見つかりません。",
		"noHistoryFound":          "履歴がありません。",
		"failedToLoadMasterDB":    "マスターデータベースの読み込みに失敗しました。",
		"csvImportTitle":          "マスターデータベースへのCSVインポート",
		"uploadCSV":               "CSVアップロード",
		"details":                 "詳細",
		"noImageUploaded":         "画像がアップロードされていません。",
		"productImage":            "製品画像",
		"updateImage":             "画像を更新",
		"uploadImage":             "画像をアップロード",
		"ok":                      "OK",
		"readOnly":                "読み取り専用 - 編集権限がありません",
		"changeHistory":           "変更履歴",
		"noChanges":               "変更がありません。",
		"pageNotFound":            "ページが見つかりません",
		"login":                   "ログイン",
		"loginFailed":             "ログインに失敗しました。ユーザー名とパスワードを確認してください。",
		"loadFailed":              "データの読み込みに失敗しました。",
		"firstName":               "名前",
		"lastName":                "苗字",
		"email":                   "メールアドレス",
		"username":                "ユーザー名",
		"password":                "パスワード",
		"updateSuccess":           "更新成功",
		"updateFailed":            "ユーザー更新失敗",
		"deleteSuccess":           "削除完了しました",
		"deleteFailed":            "削除に失敗しました",
		"noAccess":                "アクセス権限がありません。",
		"fillAllFields":           "すべてのフィールドを入力してください",
		"userCreateSuccess":       "ユーザー作成成功",
		"createError":             "作成エラー",
		"passwordMinLength":       "パスワードは6文字以上である必要があります",
		"passwordMismatch":        "パスワードが一致しません",
		"passwordResetSuccess":    "パスワードリセット成功",
		"usernameTakenTenant":     "このユーザー名は既にこの会社のデータベースに存在します",
		"usernameTakenMaster":     "このユーザー名は既にマスターアカウントに存在します",
		"usernameTakenOther":      "このユーザー名は既に他の会社で使用されています",
		"loadingData":             "読み込み中...",
		"dataLoadError":           "データの読み込みエラー",
		"noDataMessage":           "データが見つかりません",
		"selectColumns":           "エクスポートする列を少なくとも1つ選択してください。",
		"csvExportFailed":         "CSVのエクスポートに失敗しました",
		"fontLoadFailed":          "日本語フォントのPDFへの読み込みに失敗しました。PDFは標準フォントを使用します。",
		"pdfExportFailed":         "PDFのエクスポートに失敗しました",
		"allActions":              "全てのアクション",
		"submittedLog":            "送信済みログ",
		"startDate":               "開始日",
		"endDate":                 "終了日",
		"action":                  "アクション",
		"productNumber":           "品番",
		"applyFilter":             "フィルター適用",
		"itemsPerPage":            "表示件数",
		"csvExport":               "CSVエクスポート",
		"pdfExport":               "PDFエクスポート",
		"noData":                  "データがありません",
		"noDataDescription":       "条件に一致するログはありません。",
		"filters":                 "フィルター",
		"selectColumnsToExport":   "エクスポートする列を選択",
		"executeExport":           "エクスポート実行",
	},
}
