package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Shivakushwah143/SecondBrain/internal/auth"
	"github.com/Shivakushwah143/SecondBrain/internal/models"
	"github.com/Shivakushwah143/SecondBrain/internal/repository"
)

type Repositories struct {
	User     *repository.UserRepository
	Content  *repository.ContentRepository
	Reminder *repository.ReminderRepository
}

type sessionStep int

const (
	stepType sessionStep = iota
	stepTitle
	stepLink
	stepTags
)

// session is an in-progress /addcontent conversation for one chat.
type session struct {
	step    sessionStep
	content models.Content
}

type Handlers struct {
	api       *tgbotapi.BotAPI
	repos     *Repositories
	jwtSecret string

	mu       sync.Mutex
	sessions map[int64]*session
}

func NewHandlers(api *tgbotapi.BotAPI, repos *Repositories, jwtSecret string) *Handlers {
	return &Handlers{
		api:       api,
		repos:     repos,
		jwtSecret: jwtSecret,
		sessions:  make(map[int64]*session),
	}
}

func (h *Handlers) HandleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		h.handleStart(msg)
	case "help":
		h.handleHelp(msg)
	case "status":
		h.handleStatus(ctx, msg)
	case "link":
		h.handleLink(ctx, msg)
	case "quickadd":
		h.handleQuickAdd(ctx, msg)
	case "addcontent":
		h.handleAddContent(ctx, msg)
	case "mycontent":
		h.handleMyContent(ctx, msg)
	case "reminders":
		h.handleReminders(ctx, msg)
	case "skip":
		h.handleSessionInput(ctx, msg, "")
	case "cancel":
		h.handleCancel(msg)
	default:
		h.sendMessage(msg.Chat.ID, "Unknown command. Use /help to see what I can do.")
	}
}

func (h *Handlers) HandleMessage(ctx context.Context, msg *tgbotapi.Message) {
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return
	}

	if h.inSession(msg.Chat.ID) {
		h.handleSessionInput(ctx, msg, text)
		return
	}

	// A bare YouTube or Twitter link starts a save session with the link
	// prefilled.
	if (strings.HasPrefix(text, "http://") || strings.HasPrefix(text, "https://")) && contentTypeForLink(text) != "" {
		h.startLinkSession(ctx, msg, text)
		return
	}

	h.sendMessage(msg.Chat.ID, "Send me a link to save it, or use /help for commands.")
}

func (h *Handlers) handleStart(msg *tgbotapi.Message) {
	text := fmt.Sprintf(`👋 Hi %s!

I'm your second brain bot. I save links, tweets and videos straight into your knowledge base.

First, link me to your account:
1. Open the web app and copy your access token
2. Send it here as /link <token>

Then just paste any link to save it. Use /help for everything else.`, msg.From.FirstName)
	h.sendMessage(msg.Chat.ID, text)
}

func (h *Handlers) handleHelp(msg *tgbotapi.Message) {
	text := `📖 *Commands*

/link <token> - Link this chat to your web account
/status - Check whether this chat is linked
/quickadd <url> - Save a link instantly
/addcontent - Save content step by step
/mycontent - Show your recent saved items
/reminders - Show your upcoming reminders
/skip - Skip the current question
/cancel - Abort the current save

💡 You can also just paste a link.`
	h.sendMessage(msg.Chat.ID, text)
}

func (h *Handlers) handleStatus(ctx context.Context, msg *tgbotapi.Message) {
	user, err := h.userForChat(ctx, msg.Chat.ID)
	if err != nil {
		h.sendMessage(msg.Chat.ID, "🔗 Not linked yet. Copy your access token from the web app and send /link <token>.")
		return
	}
	h.sendMessage(msg.Chat.ID, fmt.Sprintf("✅ Linked to account *%s*.", user.Username))
}

func (h *Handlers) handleLink(ctx context.Context, msg *tgbotapi.Message) {
	token := strings.TrimSpace(msg.CommandArguments())
	if token == "" {
		h.sendMessage(msg.Chat.ID, "Usage: /link <token>")
		return
	}

	claims, err := auth.VerifyToken(h.jwtSecret, token)
	if err != nil {
		h.sendMessage(msg.Chat.ID, "❌ That token is invalid or expired. Copy a fresh one from the web app.")
		return
	}
	userID := claims.UserID

	chatID := strconv.FormatInt(msg.Chat.ID, 10)
	if err := h.repos.User.LinkTelegram(ctx, userID, chatID, msg.From.UserName); err != nil {
		log.Printf("Failed to link telegram chat %s: %v", chatID, err)
		h.sendMessage(msg.Chat.ID, "Something went wrong, please try again.")
		return
	}
	h.sendMessage(msg.Chat.ID, "✅ Linked! Paste any link to save it to your second brain.")
}

func (h *Handlers) handleQuickAdd(ctx context.Context, msg *tgbotapi.Message) {
	user, err := h.userForChat(ctx, msg.Chat.ID)
	if err != nil {
		h.sendMessage(msg.Chat.ID, "🔗 Link your account first with /link <token>.")
		return
	}

	link := strings.TrimSpace(msg.CommandArguments())
	if link == "" {
		h.sendMessage(msg.Chat.ID, "Usage: /quickadd <url>")
		return
	}
	kind := contentTypeForLink(link)
	if kind == "" {
		h.sendMessage(msg.Chat.ID, "❌ Please provide a YouTube or Twitter link.")
		return
	}

	content := &models.Content{
		ContentID: uuid.New().String(),
		UserID:    user.UserID,
		Title:     "Saved from Telegram",
		Link:      link,
		Type:      kind,
		Tags:      []string{"telegram"},
	}
	if err := h.repos.Content.Create(ctx, content); err != nil {
		log.Printf("Failed to save quickadd content: %v", err)
		h.sendMessage(msg.Chat.ID, "Something went wrong, please try again.")
		return
	}
	h.sendMessage(msg.Chat.ID, fmt.Sprintf("✅ Saved as *%s*.", content.Type))
}

func (h *Handlers) handleAddContent(ctx context.Context, msg *tgbotapi.Message) {
	user, err := h.userForChat(ctx, msg.Chat.ID)
	if err != nil {
		h.sendMessage(msg.Chat.ID, "🔗 Link your account first with /link <token>.")
		return
	}

	h.mu.Lock()
	h.sessions[msg.Chat.ID] = &session{
		step:    stepType,
		content: models.Content{UserID: user.UserID},
	}
	h.mu.Unlock()

	h.sendMessage(msg.Chat.ID, "What type of content is it? (youtube / twitter / pdf)\nUse /cancel to abort.")
}

func (h *Handlers) startLinkSession(ctx context.Context, msg *tgbotapi.Message, link string) {
	user, err := h.userForChat(ctx, msg.Chat.ID)
	if err != nil {
		h.sendMessage(msg.Chat.ID, "🔗 Link your account first with /link <token>, then send the link again.")
		return
	}

	h.mu.Lock()
	h.sessions[msg.Chat.ID] = &session{
		step: stepTitle,
		content: models.Content{
			UserID: user.UserID,
			Link:   link,
			Type:   contentTypeForLink(link),
		},
	}
	h.mu.Unlock()

	h.sendMessage(msg.Chat.ID, "Got the link. What should I call it? (/skip for a default title)")
}

// handleSessionInput advances the multi-step save conversation. An empty
// input means the user sent /skip.
func (h *Handlers) handleSessionInput(ctx context.Context, msg *tgbotapi.Message, input string) {
	h.mu.Lock()
	s, ok := h.sessions[msg.Chat.ID]
	h.mu.Unlock()
	if !ok {
		h.sendMessage(msg.Chat.ID, "Nothing in progress. Use /addcontent or paste a link.")
		return
	}

	switch s.step {
	case stepType:
		kind := strings.ToLower(strings.TrimSpace(input))
		if !models.ValidContentType(kind) {
			h.sendMessage(msg.Chat.ID, "Please answer youtube, twitter or pdf.")
			return
		}
		s.content.Type = kind
		s.step = stepTitle
		h.sendMessage(msg.Chat.ID, "Title? (/skip for a default)")
	case stepTitle:
		if input == "" {
			input = "Saved from Telegram"
		}
		s.content.Title = input
		if s.content.Link != "" {
			s.step = stepTags
			h.sendMessage(msg.Chat.ID, "Any tags? Comma separated, or /skip.")
			return
		}
		s.step = stepLink
		h.sendMessage(msg.Chat.ID, "Link?")
	case stepLink:
		if input == "" {
			h.sendMessage(msg.Chat.ID, "I need a link for this one.")
			return
		}
		s.content.Link = input
		s.step = stepTags
		h.sendMessage(msg.Chat.ID, "Any tags? Comma separated, or /skip.")
	case stepTags:
		s.content.Tags = parseTags(input)
		h.finishSession(ctx, msg.Chat.ID, s)
	}
}

func (h *Handlers) finishSession(ctx context.Context, chatID int64, s *session) {
	h.mu.Lock()
	delete(h.sessions, chatID)
	h.mu.Unlock()

	s.content.ContentID = uuid.New().String()
	if err := h.repos.Content.Create(ctx, &s.content); err != nil {
		log.Printf("Failed to save content from chat %d: %v", chatID, err)
		h.sendMessage(chatID, "Something went wrong, please try again.")
		return
	}
	h.sendMessage(chatID, fmt.Sprintf("✅ Saved *%s*.", s.content.Title))
}

func (h *Handlers) handleCancel(msg *tgbotapi.Message) {
	h.mu.Lock()
	_, ok := h.sessions[msg.Chat.ID]
	delete(h.sessions, msg.Chat.ID)
	h.mu.Unlock()

	if ok {
		h.sendMessage(msg.Chat.ID, "❌ Cancelled.")
	} else {
		h.sendMessage(msg.Chat.ID, "Nothing to cancel.")
	}
}

func (h *Handlers) handleMyContent(ctx context.Context, msg *tgbotapi.Message) {
	user, err := h.userForChat(ctx, msg.Chat.ID)
	if err != nil {
		h.sendMessage(msg.Chat.ID, "🔗 Link your account first with /link <token>.")
		return
	}

	contents, err := h.repos.Content.GetByUserID(ctx, user.UserID, 10)
	if err != nil {
		log.Printf("Failed to list content for chat %d: %v", msg.Chat.ID, err)
		h.sendMessage(msg.Chat.ID, "Something went wrong, please try again.")
		return
	}
	if len(contents) == 0 {
		h.sendMessage(msg.Chat.ID, "Your second brain is empty. Paste a link to start.")
		return
	}

	var sb strings.Builder
	sb.WriteString("🧠 *Your recent items*\n\n")
	for i, c := range contents {
		fmt.Fprintf(&sb, "%d. %s (%s)\n%s\n", i+1, c.Title, c.Type, c.Link)
	}
	h.sendMessage(msg.Chat.ID, sb.String())
}

func (h *Handlers) handleReminders(ctx context.Context, msg *tgbotapi.Message) {
	user, err := h.userForChat(ctx, msg.Chat.ID)
	if err != nil {
		h.sendMessage(msg.Chat.ID, "🔗 Link your account first with /link <token>.")
		return
	}

	reminders, err := h.repos.Reminder.GetByUserID(ctx, user.UserID)
	if err != nil {
		log.Printf("Failed to list reminders for chat %d: %v", msg.Chat.ID, err)
		h.sendMessage(msg.Chat.ID, "Something went wrong, please try again.")
		return
	}

	var sb strings.Builder
	sb.WriteString("⏰ *Your reminders*\n\n")
	count := 0
	for _, r := range reminders {
		if !r.Active {
			continue
		}
		count++
		fmt.Fprintf(&sb, "• %s at %s (%s)\n", r.Title, r.FireTime.Format("02 Jan 2006, 3:04 PM"), r.Recurrence)
	}
	if count == 0 {
		h.sendMessage(msg.Chat.ID, "No active reminders.")
		return
	}
	h.sendMessage(msg.Chat.ID, sb.String())
}

func (h *Handlers) userForChat(ctx context.Context, chatID int64) (*models.User, error) {
	user, err := h.repos.User.GetByTelegramChatID(ctx, strconv.FormatInt(chatID, 10))
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			log.Printf("Failed to look up chat %d: %v", chatID, err)
		}
		return nil, err
	}
	return user, nil
}

func (h *Handlers) inSession(chatID int64) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.sessions[chatID]
	return ok
}

func (h *Handlers) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	if _, err := h.api.Send(msg); err != nil {
		log.Printf("Failed to send message: %v", err)
	}
}

func contentTypeForLink(link string) string {
	l := strings.ToLower(link)
	switch {
	case strings.Contains(l, "youtube.com") || strings.Contains(l, "youtu.be"):
		return models.ContentTypeYouTube
	case strings.Contains(l, "twitter.com") || strings.Contains(l, "x.com"):
		return models.ContentTypeTwitter
	case strings.HasSuffix(l, ".pdf"):
		return models.ContentTypePDF
	default:
		return ""
	}
}

func parseTags(input string) []string {
	var tags []string
	for _, t := range strings.Split(input, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
