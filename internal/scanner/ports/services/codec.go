package services

// TokenCodec читает утверждения из access токена без проверки подписи.
// Методы никогда не паникуют и не возвращают ошибок: ok=false для некорректного токена.
type TokenCodec interface {
	DecodeExpiry(accessToken string) (int64, bool)
	DecodeSubject(accessToken string) (string, bool)
}
