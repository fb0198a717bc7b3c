package app

import (
	"context"
	"time"
)

// Application bundles the client's components: config, logging, the durable
// keystore, the REST client, the session store, the realtime channel
// manager, and the chat aggregate.
type Application struct {
	Config   Config
	Logger   *Logger
	Keystore *Keystore
	Client   *Client
	Session  *Session
	Realtime *ChannelManager
	Chat     *ChatState
	I18n     *Translator
}

func NewApplication(cfg Config) (*Application, error) {
	logger := NewLogger(DefaultLogWriter())

	keystore, err := NewKeystore(DefaultKeystorePath())
	if err != nil {
		return nil, err
	}

	client := NewClient(cfg.APIBaseURL, keystore, time.Duration(cfg.RequestTimeoutSec)*time.Second)
	session := NewSession(client, keystore, logger)

	chat := NewChatState(client, client, logger)
	realtime := NewChannelManager(cfg.SocketURL, logger)
	realtime.SetErrorHandler(chat.SetConnectionError)
	chat.AttachChannel(realtime)

	lang := Language(keystore.Language())
	if lang == "" {
		lang = Language(cfg.Language)
	}

	return &Application{
		Config:   cfg,
		Logger:   logger,
		Keystore: keystore,
		Client:   client,
		Session:  session,
		Realtime: realtime,
		Chat:     chat,
		I18n:     NewTranslator(lang),
	}, nil
}

// Start resolves the stored session once and, when it holds, brings the
// realtime channel up.
func (a *Application) Start(ctx context.Context) {
	a.Session.Resolve(ctx)
	if a.Session.State().IsAuthenticated {
		a.connectRealtime()
	}
}

// SignIn logs in and connects the realtime channel on success. The login
// error is returned as-is so forms can react to it.
func (a *Application) SignIn(ctx context.Context, email, password string) error {
	if err := a.Session.Login(ctx, email, password); err != nil {
		return err
	}
	a.connectRealtime()
	return nil
}

func (a *Application) SignUp(ctx context.Context, email, password, firstName, lastName string, role UserRole) error {
	if err := a.Session.Register(ctx, email, password, firstName, lastName, role); err != nil {
		return err
	}
	a.connectRealtime()
	return nil
}

// SignOut closes the realtime channel, drops the chat aggregate, and
// resets the session. Client-side only.
func (a *Application) SignOut() {
	if err := a.Realtime.Close(); err != nil {
		a.Logger.Error("socket close failed", map[string]interface{}{"error": err.Error()})
	}
	a.Chat.Reset()
	a.Session.Logout()
}

// SetLanguage switches the UI language and persists the preference.
func (a *Application) SetLanguage(lang Language) {
	a.I18n.SetLanguage(lang)
	if err := a.Keystore.SetLanguage(string(a.I18n.Language())); err != nil {
		a.Logger.Error("language persist failed", map[string]interface{}{"error": err.Error()})
	}
}

func (a *Application) connectRealtime() {
	if err := a.Realtime.Connect(a.Keystore.Token()); err != nil {
		a.Logger.Error("socket connect failed", map[string]interface{}{"error": err.Error()})
		a.Chat.SetConnectionError(errConnection)
	}
}
