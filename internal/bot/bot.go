package bot

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/glebk/userlist-bot/internal/domain"
	"github.com/glebk/userlist-bot/internal/service"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	buttonUsers    = "👥 Users"
	buttonLoadMore = "⏬ Load more"
)

// sender is the part of tgbotapi.BotAPI the handlers use
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Bot represents the Telegram bot
type Bot struct {
	updates   *tgbotapi.BotAPI
	api       sender
	list      *service.UserList
	mutations *service.Mutations

	// active search query per chat
	searches map[int64]string
}

// New creates a new Bot instance
func New(token string, list *service.UserList, mutations *service.Mutations) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	log.Printf("Authorized on account %s", api.Self.UserName)

	b := newBot(api, list, mutations)
	b.updates = api
	return b, nil
}

func newBot(api sender, list *service.UserList, mutations *service.Mutations) *Bot {
	return &Bot{
		api:       api,
		list:      list,
		mutations: mutations,
		searches:  make(map[int64]string),
	}
}

// Start handles updates one at a time until ctx is done
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.updates.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.updates.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message != nil {
				b.handleMessage(ctx, update.Message)
			} else if update.CallbackQuery != nil {
				b.handleCallbackQuery(ctx, update.CallbackQuery)
			}
		}
	}
}

// handleMessage handles incoming messages
func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message.IsCommand() {
		b.handleCommand(ctx, message)
		return
	}

	switch message.Text {
	case buttonUsers:
		b.handleList(ctx, message.Chat.ID)
	case buttonLoadMore:
		b.handleMore(ctx, message.Chat.ID)
	}
}

// handleCommand handles bot commands
func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	args := message.CommandArguments()

	switch message.Command() {
	case "start":
		b.handleStart(ctx, message)
	case "list":
		b.handleList(ctx, chatID)
	case "more":
		b.handleMore(ctx, chatID)
	case "search":
		b.handleSearch(chatID, args)
	case "add":
		b.handleAdd(ctx, chatID, args)
	case "edit":
		b.handleEdit(ctx, chatID, args)
	case "delete":
		b.handleDelete(chatID, args)
	case "help":
		b.handleHelp(chatID)
	default:
		b.sendMessage(chatID, "Unknown command. Use /help to see what I can do")
	}
}

// handleStart greets the user and shows the list
func (b *Bot) handleStart(ctx context.Context, message *tgbotapi.Message) {
	name := "there"
	if message.From != nil {
		name = message.From.FirstName
	}

	text := fmt.Sprintf(
		"👋 Welcome, %s!\n\n"+
			"Browse, search and edit the user directory.\n"+
			"Use /help to see all commands.",
		name,
	)

	keyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(buttonUsers),
			tgbotapi.NewKeyboardButton(buttonLoadMore),
		),
	)

	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	msg.ReplyMarkup = keyboard

	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending start message: %v", err)
	}

	b.handleList(ctx, message.Chat.ID)
}

// handleList renders the list, retrying the initial load if it never succeeded
func (b *Bot) handleList(ctx context.Context, chatID int64) {
	if b.list.Phase() == domain.PhaseIdle {
		b.sendMessage(chatID, "⏳ Loading users...")
		if err := b.list.Initialize(ctx); err != nil {
			log.Printf("Error loading users: %v", err)
			b.sendMessage(chatID, describeError(err))
			return
		}
	}

	b.sendList(chatID)
}

// handleMore loads the next page, or retries the first one if it never loaded
func (b *Bot) handleMore(ctx context.Context, chatID int64) {
	if b.list.Phase() == domain.PhaseIdle {
		b.handleList(ctx, chatID)
		return
	}

	if !b.list.HasMore() {
		b.sendMessage(chatID, "✅ All users are loaded.")
		return
	}

	if err := b.list.LoadMore(ctx); err != nil {
		log.Printf("Error loading more users: %v", err)
		b.sendMessage(chatID, describeError(err))
		return
	}

	b.sendList(chatID)
}

// handleSearch sets or clears the chat's filter
func (b *Bot) handleSearch(chatID int64, query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		delete(b.searches, chatID)
	} else {
		b.searches[chatID] = query
	}

	b.sendList(chatID)
}

// handleAdd creates a user from "First Last | email | age"
func (b *Bot) handleAdd(ctx context.Context, chatID int64, args string) {
	user, err := parseUserArgs(args)
	if err != nil {
		b.sendMessage(chatID, describeError(err)+"\n\nUsage: /add First Last | email | age")
		return
	}

	created, err := b.mutations.Create(ctx, user)
	if err != nil {
		log.Printf("Error creating user: %v", err)
		b.sendMessage(chatID, describeError(err))
		return
	}

	b.sendMessage(chatID, fmt.Sprintf("✅ User #%d %s added.", created.ID, created.FullName()))
}

// handleEdit updates a user from "<id> First Last | email | age"
func (b *Bot) handleEdit(ctx context.Context, chatID int64, args string) {
	id, user, err := parseEditArgs(args)
	if err != nil {
		b.sendMessage(chatID, describeError(err)+"\n\nUsage: /edit <id> First Last | email | age")
		return
	}

	updated, err := b.mutations.Update(ctx, id, user)
	if err != nil {
		log.Printf("Error updating user %d: %v", id, err)
		b.sendMessage(chatID, describeError(err))
		return
	}

	b.sendMessage(chatID, fmt.Sprintf("✅ User #%d %s updated.", updated.ID, updated.FullName()))
}

// handleDelete asks for confirmation before deleting
func (b *Bot) handleDelete(chatID int64, args string) {
	id, err := parseID(args)
	if err != nil {
		b.sendMessage(chatID, describeError(err)+"\n\nUsage: /delete <id>")
		return
	}

	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑 Delete", fmt.Sprintf("delete:%d", id)),
			tgbotapi.NewInlineKeyboardButtonData("↩️ Keep", fmt.Sprintf("keep:%d", id)),
		),
	)

	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("Delete user #%d?", id))
	msg.ReplyMarkup = keyboard

	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending delete confirmation: %v", err)
	}
}

// handleHelp shows help information
func (b *Bot) handleHelp(chatID int64) {
	text := `User directory - Help

Commands:
/list - Show loaded users
/more - Load the next page
/search <text> - Filter by name or email (empty clears)
/add First Last | email | age - Add a user
/edit <id> First Last | email | age - Update a user
/delete <id> - Delete a user
/help - Show this help`

	b.sendMessage(chatID, text)
}

// handleCallbackQuery handles inline button callbacks
func (b *Bot) handleCallbackQuery(ctx context.Context, query *tgbotapi.CallbackQuery) {
	if query.Message == nil {
		b.answerCallback(query.ID, "Message is too old")
		return
	}

	action, arg, _ := strings.Cut(query.Data, ":")
	chatID := query.Message.Chat.ID

	switch action {
	case "more":
		b.answerCallback(query.ID, "")
		b.handleMore(ctx, chatID)

	case "delete":
		id, err := parseID(arg)
		if err != nil {
			b.answerCallback(query.ID, "Invalid user ID")
			return
		}

		if err := b.mutations.Delete(ctx, id); err != nil {
			log.Printf("Error deleting user %d: %v", id, err)
			b.answerCallback(query.ID, describeError(err))
			return
		}

		b.answerCallback(query.ID, "🗑 Deleted")
		b.editMessage(query.Message, fmt.Sprintf("🗑 User #%d deleted.", id))

	case "keep":
		b.answerCallback(query.ID, "")
		b.editMessage(query.Message, query.Message.Text+"\n\n↩️ Kept.")

	default:
		b.answerCallback(query.ID, "Unknown action")
	}
}

// sendList renders the chat's filtered view with a load-more button
func (b *Bot) sendList(chatID int64) {
	query := b.searches[chatID]

	users := b.list.Users()
	if query != "" {
		users = b.list.Search(query)
	}

	msg := tgbotapi.NewMessage(chatID, renderList(users, b.list.Len(), b.list.Total(), query))
	if b.list.HasMore() {
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(buttonLoadMore, "more:0"),
			),
		)
	}

	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending list: %v", err)
	}
}

// sendMessage sends a simple text message
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}

// editMessage replaces the text of a sent message
func (b *Bot) editMessage(message *tgbotapi.Message, text string) {
	editMsg := tgbotapi.NewEditMessageText(message.Chat.ID, message.MessageID, text)
	if _, err := b.api.Send(editMsg); err != nil {
		log.Printf("Error editing message: %v", err)
	}
}

// answerCallback answers a callback query
func (b *Bot) answerCallback(callbackID string, text string) {
	callback := tgbotapi.NewCallback(callbackID, text)
	if _, err := b.api.Request(callback); err != nil {
		log.Printf("Error answering callback: %v", err)
	}
}
