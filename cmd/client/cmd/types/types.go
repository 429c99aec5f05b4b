package types

// ctxKey — собственный тип ключа контекста, чтобы не пересекаться с
// чужими значениями.
type ctxKey string

// ClientAppKey — ключ, под которым корневая команда кладёт *client.App
// в контекст для подкоманд.
const ClientAppKey ctxKey = "client-app"
