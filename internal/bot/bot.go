package bot

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rina-hagihara0844/meal-planner/internal/service"
	"github.com/rina-hagihara0844/meal-planner/pkg/utils"
)

const (
	cbBought   = "bought:"
	cbAddPick  = "add:"
	cbGenerate = "generate"
	cbShopping = "shopping"
	cbCancel   = "cancel"
)

const helpText = `📚 Meal Planner

/today - today's meals and a summary
/week - meals for the next 7 days
/shopping - what is left to buy
/generate [from] [to] - add ingredients for planned meals (default: this week)
/add - add an item to the shopping list
/clear - remove purchased items
/help - this message`

// sender is the part of tgbotapi.BotAPI the bot uses
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// BotApp - основная структура бота
type BotApp struct {
	API *tgbotapi.BotAPI
	out sender

	ingredients *service.IngredientService
	meals       *service.MealService
	shopping    *service.ShoppingService
	dashboard   *service.DashboardService

	fsm       *ChatFSM
	callbacks map[string]func(*tgbotapi.CallbackQuery)
	now       func() time.Time
}

// Конструктор бота
func NewBotApp(
	token string,
	ingredients *service.IngredientService,
	meals *service.MealService,
	shopping *service.ShoppingService,
	dashboard *service.DashboardService,
) (*BotApp, error) {
	botAPI, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	b := newBotApp(botAPI, ingredients, meals, shopping, dashboard)
	b.API = botAPI
	return b, nil
}

func newBotApp(
	out sender,
	ingredients *service.IngredientService,
	meals *service.MealService,
	shopping *service.ShoppingService,
	dashboard *service.DashboardService,
) *BotApp {
	b := &BotApp{
		out:         out,
		ingredients: ingredients,
		meals:       meals,
		shopping:    shopping,
		dashboard:   dashboard,
		fsm:         NewChatFSM(),
		now:         time.Now,
	}
	b.registerCallbacks()
	return b
}

// Run reads updates until Stop is called
func (b *BotApp) Run() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.API.GetUpdatesChan(u)
	utils.Log.Infof("🤖 Bot @%s started", b.API.Self.UserName)

	for update := range updates {
		b.handleUpdate(update)
	}
}

func (b *BotApp) Stop() {
	b.API.StopReceivingUpdates()
}

func (b *BotApp) handleUpdate(update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		b.handleCallback(update.CallbackQuery)
		return
	}
	if update.Message == nil {
		return
	}
	if update.Message.IsCommand() {
		b.handleCommand(update.Message)
		return
	}
	b.handleRegularMessage(update.Message)
}

// Команды
func (b *BotApp) handleCommand(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	// a new command abandons any half-finished conversation
	b.fsm.DeleteState(chatID)

	switch msg.Command() {
	case "start":
		b.sendText(chatID, "👋 Hi! I keep your meal plan and shopping list.\n\n"+helpText)
	case "help":
		b.sendText(chatID, helpText)
	case "today":
		b.showToday(chatID)
	case "week":
		b.showWeek(chatID)
	case "shopping":
		b.showShoppingList(chatID)
	case "generate":
		b.generate(chatID, msg.CommandArguments())
	case "clear":
		b.clearPurchased(chatID)
	case "add":
		b.startAddItemFlow(chatID)
	default:
		b.sendText(chatID, "Unknown command. Try /help")
	}
}

func (b *BotApp) handleRegularMessage(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	state, ok := b.fsm.GetState(chatID)
	if !ok {
		b.sendText(chatID, "Try /help to see what I can do.")
		return
	}

	switch state.Action {
	case actionAddItem:
		b.handleAddItemStep(chatID, state, strings.TrimSpace(msg.Text))
	default:
		b.fsm.DeleteState(chatID)
	}
}

func (b *BotApp) handleCallback(callback *tgbotapi.CallbackQuery) {
	data := callback.Data
	b.answerCallback(callback.ID, "")
	if callback.Message == nil {
		return
	}

	if fn, ok := b.callbacks[data]; ok {
		fn(callback)
		return
	}

	switch {
	case strings.HasPrefix(data, cbBought):
		b.markBought(callback.Message.Chat.ID, strings.TrimPrefix(data, cbBought))
	case strings.HasPrefix(data, cbAddPick):
		b.pickIngredient(callback.Message.Chat.ID, strings.TrimPrefix(data, cbAddPick))
	default:
		utils.Log.Warnf("unknown callback %q from %d", data, callback.From.ID)
	}
}

func (b *BotApp) registerCallbacks() {
	b.callbacks = map[string]func(*tgbotapi.CallbackQuery){
		cbGenerate: func(c *tgbotapi.CallbackQuery) {
			b.generate(c.Message.Chat.ID, "")
		},
		cbShopping: func(c *tgbotapi.CallbackQuery) {
			b.showShoppingList(c.Message.Chat.ID)
		},
		cbCancel: func(c *tgbotapi.CallbackQuery) {
			b.fsm.DeleteState(c.Message.Chat.ID)
			b.sendText(c.Message.Chat.ID, "Cancelled.")
		},
	}
}

// ==================== Screens ====================

func (b *BotApp) showToday(chatID int64) {
	dash, err := b.dashboard.Today(b.now())
	if err != nil {
		b.sendError(chatID, "dashboard", err)
		return
	}
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🛒 Shopping list", cbShopping),
			tgbotapi.NewInlineKeyboardButtonData("🧾 Generate for the week", cbGenerate),
		),
	}
	b.sendTextWithKeyboard(chatID, formatDashboard(dash), rows)
}

func (b *BotApp) showWeek(chatID int64) {
	start, end := service.WeekRange(b.now())
	meals, err := b.meals.ListMeals(&start, &end)
	if err != nil {
		b.sendError(chatID, "list meals", err)
		return
	}
	b.sendText(chatID, formatWeek(start, meals))
}

func (b *BotApp) showShoppingList(chatID int64) {
	unpurchased := false
	items, err := b.shopping.ListItems(&unpurchased)
	if err != nil {
		b.sendError(chatID, "list shopping items", err)
		return
	}
	if len(items) == 0 {
		b.sendText(chatID, "🎉 Nothing left to buy.")
		return
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(items))
	for _, item := range items {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ "+itemLabel(item), cbBought+item.ID.String()),
		))
	}
	b.sendTextWithKeyboard(chatID, fmt.Sprintf("🛒 To buy (%d). Tap an item once it is in the basket:", len(items)), rows)
}

func (b *BotApp) markBought(chatID int64, rawID string) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		b.sendText(chatID, "❌ Invalid item")
		return
	}
	yes := true
	item, err := b.shopping.UpdateItem(id, service.UpdateShoppingItemDTO{IsPurchased: &yes})
	if err != nil {
		b.sendError(chatID, "mark bought", err)
		return
	}
	b.sendText(chatID, "✅ Bought: "+itemLabel(item))
}

func (b *BotApp) generate(chatID int64, args string) {
	start, end, err := parseGenerateArgs(args, b.now())
	if err != nil {
		b.sendText(chatID, "❌ "+err.Error())
		return
	}

	lines, result, err := b.shopping.GenerateAndAdd(&start, &end)
	if err != nil {
		b.sendError(chatID, "generate shopping list", err)
		return
	}
	header := fmt.Sprintf("🧾 %s – %s\n", start.Format(service.DateLayout), end.Format(service.DateLayout))
	b.sendText(chatID, header+formatGenerated(lines, result))
}

func (b *BotApp) clearPurchased(chatID int64) {
	result, err := b.shopping.ClearPurchased()
	if err != nil {
		b.sendError(chatID, "clear purchased", err)
		return
	}
	msg := fmt.Sprintf("🧹 Removed %d purchased items.", len(result.Succeeded))
	if !result.OK() {
		msg += fmt.Sprintf(" %d could not be removed, try /clear again.", len(result.Failed))
	}
	b.sendText(chatID, msg)
}

// ==================== /add conversation ====================

func (b *BotApp) startAddItemFlow(chatID int64) {
	ingredients, err := b.ingredients.ListIngredients()
	if err != nil {
		b.sendError(chatID, "list ingredients", err)
		return
	}
	if len(ingredients) == 0 {
		b.sendText(chatID, "📭 No ingredients yet. Add some in the web app first.")
		return
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(ingredients)+1)
	for _, ing := range ingredients {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(ing.Name, cbAddPick+ing.ID.String()),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("⬅️ Cancel", cbCancel),
	))

	b.fsm.SetState(chatID, &ChatState{Action: actionAddItem, Step: 1})
	b.sendTextWithKeyboard(chatID, "Which ingredient?", rows)
}

func (b *BotApp) pickIngredient(chatID int64, rawID string) {
	state, ok := b.fsm.GetState(chatID)
	if !ok || state.Action != actionAddItem {
		b.sendText(chatID, "Start with /add")
		return
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		b.sendText(chatID, "❌ Invalid ingredient")
		return
	}
	ing, err := b.ingredients.GetIngredient(id)
	if err != nil {
		b.sendError(chatID, "get ingredient", err)
		return
	}

	state.IngredientID = ing.ID
	state.Ingredient = ing.Name
	state.Step = 2
	b.fsm.SetState(chatID, state)

	prompt := fmt.Sprintf("How much %s?", ing.Name)
	if ing.Unit != "" {
		prompt = fmt.Sprintf("How much %s (%s)?", ing.Name, ing.Unit)
	}
	b.sendText(chatID, prompt)
}

func (b *BotApp) handleAddItemStep(chatID int64, state *ChatState, text string) {
	if state.Step != 2 {
		b.sendText(chatID, "Pick an ingredient from the list above.")
		return
	}

	qty, err := strconv.ParseFloat(strings.ReplaceAll(text, ",", "."), 64)
	if err != nil || !service.ValidQuantity(qty) {
		b.sendText(chatID, "❌ Please send a positive number")
		return
	}

	item, err := b.shopping.CreateItem(service.CreateShoppingItemDTO{IngredientID: state.IngredientID, Quantity: qty})
	b.fsm.DeleteState(chatID)
	if err != nil {
		b.sendError(chatID, "add shopping item", err)
		return
	}
	b.sendText(chatID, "🛒 Added: "+itemLabel(item))
}

// ==================== Sending ====================

func (b *BotApp) sendText(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.out.Send(msg); err != nil {
		utils.Log.Errorf("[sendText] chat %d: %v", chatID, err)
	}
}

func (b *BotApp) sendTextWithKeyboard(chatID int64, text string, rows [][]tgbotapi.InlineKeyboardButton) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	if _, err := b.out.Send(msg); err != nil {
		utils.Log.Errorf("[sendTextWithKeyboard] chat %d: %v", chatID, err)
	}
}

func (b *BotApp) sendError(chatID int64, op string, err error) {
	utils.Log.Errorf("%s for chat %d: %v", op, chatID, err)
	b.sendText(chatID, userMessage(err))
}

func (b *BotApp) answerCallback(callbackID string, text string) {
	if _, err := b.out.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		utils.Log.Warnf("answer callback: %v", err)
	}
}
