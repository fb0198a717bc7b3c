package app

// Language is a supported UI language code.
type Language string

const (
	LangNorwegian Language = "no"
	LangEnglish   Language = "en"
)

// Translator resolves UI strings against the static translation tables.
// Norwegian is the default language; English is the fallback for keys
// missing from the active table, and unknown keys render as themselves.
type Translator struct {
	lang Language
}

func NewTranslator(lang Language) *Translator {
	switch lang {
	case LangNorwegian, LangEnglish:
	default:
		lang = LangNorwegian
	}
	return &Translator{lang: lang}
}

func (t *Translator) Language() Language { return t.lang }

func (t *Translator) SetLanguage(lang Language) {
	switch lang {
	case LangNorwegian, LangEnglish:
		t.lang = lang
	}
}

func (t *Translator) T(key string) string {
	table := translationsNO
	if t.lang == LangEnglish {
		table = translationsEN
	}
	if s, ok := table[key]; ok {
		return s
	}
	if s, ok := translationsEN[key]; ok {
		return s
	}
	return key
}

var translationsNO = map[string]string{
	"app.name":     "Opinion Chat",
	"app.loading":  "Laster...",
	"app.error":    "En feil har oppstått",
	"app.retry":    "Prøv igjen",
	"app.cancel":   "Avbryt",
	"app.save":     "Lagre",
	"app.delete":   "Slett",
	"app.close":    "Lukk",
	"app.send":     "Send",
	"app.back":     "Tilbake",
	"app.next":     "Neste",
	"app.previous": "Forrige",

	"auth.login":            "Logg inn",
	"auth.logout":           "Logg ut",
	"auth.register":         "Registrer deg",
	"auth.email":            "E-post",
	"auth.password":         "Passord",
	"auth.confirmPassword":  "Bekreft passord",
	"auth.firstName":        "Fornavn",
	"auth.lastName":         "Etternavn",
	"auth.role":             "Rolle",
	"auth.noAccount":        "Har du ikke en konto?",
	"auth.hasAccount":       "Har du allerede en konto?",
	"auth.loginFailed":      "Pålogging mislyktes",
	"auth.registerFailed":   "Registrering mislyktes",
	"auth.passwordMismatch": "Passordene samsvarer ikke",
	"auth.passwordTooShort": "Passordet må være minst 8 tegn",
	"auth.unauthorized":     "Ikke autorisert",

	"role.admin":       "Administrator",
	"role.moderator":   "Moderator",
	"role.participant": "Deltaker",
	"role.observer":    "Observatør",

	"chat.title":           "Chatter",
	"chat.new":             "Ny chat",
	"chat.join":            "Bli med i chat",
	"chat.leave":           "Forlat chat",
	"chat.participants":    "Deltakere",
	"chat.message":         "Melding",
	"chat.sendMessage":     "Send melding",
	"chat.typeMessage":     "Skriv en melding...",
	"chat.downloadLog":     "Last ned chat-logg",
	"chat.noMessages":      "Ingen meldinger ennå",
	"chat.noChats":         "Ingen chatter funnet",
	"chat.createChat":      "Opprett chat",
	"chat.chatName":        "Chat-navn",
	"chat.chatDescription": "Beskrivelse (valgfritt)",

	"file.upload":       "Last opp fil",
	"file.select":       "Velg fil",
	"file.uploading":    "Laster opp...",
	"file.uploadFailed": "Opplasting mislyktes",
	"file.download":     "Last ned",

	"poll.create":         "Opprett avstemning",
	"poll.question":       "Spørsmål",
	"poll.options":        "Alternativer",
	"poll.vote":           "Stem",
	"poll.votes":          "Stemmer",
	"poll.results":        "Resultater",
	"poll.singleChoice":   "Enkeltvalg (kun ett alternativ)",
	"poll.multipleChoice": "Flervalg (flere alternativer)",
	"poll.close":          "Avslutt avstemning",
	"poll.closed":         "Avstemning avsluttet",
	"poll.minOptions":     "En avstemning må ha minst to alternativer",
	"poll.emptyOptions":   "Alle alternativer må fylles ut",

	"help.title":      "Hjelp",
	"help.getStarted": "Kom i gang",
	"help.chat":       "Chat",
	"help.files":      "Filer",
	"help.polls":      "Avstemninger",
	"help.roles":      "Brukerroller",
}

var translationsEN = map[string]string{
	"app.name":     "Opinion Chat",
	"app.loading":  "Loading...",
	"app.error":    "An error occurred",
	"app.retry":    "Retry",
	"app.cancel":   "Cancel",
	"app.save":     "Save",
	"app.delete":   "Delete",
	"app.close":    "Close",
	"app.send":     "Send",
	"app.back":     "Back",
	"app.next":     "Next",
	"app.previous": "Previous",

	"auth.login":            "Log in",
	"auth.logout":           "Log out",
	"auth.register":         "Register",
	"auth.email":            "Email",
	"auth.password":         "Password",
	"auth.confirmPassword":  "Confirm password",
	"auth.firstName":        "First name",
	"auth.lastName":         "Last name",
	"auth.role":             "Role",
	"auth.noAccount":        "Don't have an account?",
	"auth.hasAccount":       "Already have an account?",
	"auth.loginFailed":      "Login failed",
	"auth.registerFailed":   "Registration failed",
	"auth.passwordMismatch": "Passwords do not match",
	"auth.passwordTooShort": "Password must be at least 8 characters",
	"auth.unauthorized":     "Unauthorized",

	"role.admin":       "Administrator",
	"role.moderator":   "Moderator",
	"role.participant": "Participant",
	"role.observer":    "Observer",

	"chat.title":           "Chats",
	"chat.new":             "New chat",
	"chat.join":            "Join chat",
	"chat.leave":           "Leave chat",
	"chat.participants":    "Participants",
	"chat.message":         "Message",
	"chat.sendMessage":     "Send message",
	"chat.typeMessage":     "Type a message...",
	"chat.downloadLog":     "Download chat log",
	"chat.noMessages":      "No messages yet",
	"chat.noChats":         "No chats found",
	"chat.createChat":      "Create chat",
	"chat.chatName":        "Chat name",
	"chat.chatDescription": "Description (optional)",

	"file.upload":       "Upload file",
	"file.select":       "Select file",
	"file.uploading":    "Uploading...",
	"file.uploadFailed": "Upload failed",
	"file.download":     "Download",

	"poll.create":         "Create poll",
	"poll.question":       "Question",
	"poll.options":        "Options",
	"poll.vote":           "Vote",
	"poll.votes":          "Votes",
	"poll.results":        "Results",
	"poll.singleChoice":   "Single choice (only one option)",
	"poll.multipleChoice": "Multiple choice (several options)",
	"poll.close":          "Close poll",
	"poll.closed":         "Poll closed",
	"poll.minOptions":     "A poll must have at least two options",
	"poll.emptyOptions":   "All options must be filled out",

	"help.title":      "Help",
	"help.getStarted": "Get started",
	"help.chat":       "Chat",
	"help.files":      "Files",
	"help.polls":      "Polls",
	"help.roles":      "User roles",
}
