// Package i18n centraliza los textos visibles al usuario en árabe (idioma por defecto, RTL) e inglés.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Claves de mensajes.
const (
	KeyAuthFailed           = "auth.failed"
	KeyOAuthFailed          = "auth.oauth_failed"
	KeyUnauthorizedCustomer = "unauthorized.customer"
	KeyUnauthorizedStaff    = "unauthorized.staff"
	KeyCredentialsRequired  = "validation.credentials_required"
	KeyPasswordTooShort     = "validation.password_too_short"
	KeyInvalidEmail         = "validation.invalid_email"
	KeyInvalidRole          = "validation.invalid_role"
	KeyEmailExists          = "register.email_exists"
	KeyInvalidBody          = "request.invalid_body"
	KeyInternal             = "internal"
	KeyNoSession            = "session.none"
	KeyLoading              = "page.loading"
	KeySignedOut            = "session.signed_out"
	KeyOAuthNotConfigured   = "auth.oauth_not_configured"
	KeyUserNotFound         = "users.not_found"
	KeySelfRoleChange       = "users.self_role_change"
)

var supported = []language.Tag{language.Arabic, language.English}

var matcher = language.NewMatcher(supported)

var translations = map[string][2]string{
	KeyAuthFailed:           {"البريد الإلكتروني أو كلمة المرور غير صحيحة", "Invalid email or password"},
	KeyOAuthFailed:          {"تعذر تسجيل الدخول، يرجى المحاولة مرة أخرى", "Sign-in failed, please try again"},
	KeyUnauthorizedCustomer: {"ليس لديك صلاحية للوصول إلى هذه الصفحة", "You do not have permission to access this page"},
	KeyUnauthorizedStaff:    {"هذه الصفحة متاحة لمدير النظام فقط", "This page is only available to the super admin"},
	KeyCredentialsRequired:  {"البريد الإلكتروني وكلمة المرور مطلوبان", "Email and password are required"},
	KeyPasswordTooShort:     {"يجب أن تتكون كلمة المرور من 8 أحرف على الأقل", "Password must be at least 8 characters"},
	KeyInvalidEmail:         {"البريد الإلكتروني غير صالح", "Invalid email address"},
	KeyInvalidRole:          {"نوع الحساب غير صالح", "Invalid account type"},
	KeyEmailExists:          {"البريد الإلكتروني مسجل بالفعل", "Email is already registered"},
	KeyInvalidBody:          {"طلب غير صالح", "Invalid request"},
	KeyInternal:             {"حدث خطأ غير متوقع", "An unexpected error occurred"},
	KeyNoSession:            {"لا توجد جلسة نشطة", "No active session"},
	KeyLoading:              {"جارٍ التحميل...", "Loading..."},
	KeySignedOut:            {"تم تسجيل الخروج", "Signed out"},
	KeyOAuthNotConfigured:   {"تسجيل الدخول عبر Google غير متاح", "Google sign-in is not available"},
	KeyUserNotFound:         {"المستخدم غير موجود", "User not found"},
	KeySelfRoleChange:       {"لا يمكنك تغيير دورك الخاص", "You cannot change your own role"},
}

var cat = buildCatalog()

func buildCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.Arabic))
	for key, tr := range translations {
		// SetString solo falla con tags o mensajes mal formados; los de arriba son fijos.
		_ = b.SetString(language.Arabic, key, tr[0])
		_ = b.SetString(language.English, key, tr[1])
	}
	return b
}

// Match elige el idioma a partir del header Accept-Language.
// Si el header está vacío o no coincide con ningún idioma soportado devuelve fallback.
func Match(acceptLanguage string, fallback language.Tag) language.Tag {
	if acceptLanguage == "" {
		return fallback
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return fallback
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return fallback
	}
	return supported[idx]
}

// Parse convierte "ar"/"en" en un tag soportado; cualquier otro valor devuelve árabe.
func Parse(s string) language.Tag {
	if t, err := language.Parse(s); err == nil {
		base, _ := t.Base()
		if enBase, _ := language.English.Base(); base == enBase {
			return language.English
		}
	}
	return language.Arabic
}

// T traduce una clave al idioma indicado. Una clave desconocida se devuelve tal cual.
func T(lang language.Tag, key string) string {
	return message.NewPrinter(lang, message.Catalog(cat)).Sprintf(key)
}

// Dir devuelve la dirección de escritura del idioma ("rtl" para árabe).
func Dir(lang language.Tag) string {
	if lang == language.Arabic {
		return "rtl"
	}
	return "ltr"
}
