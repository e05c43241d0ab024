package bot

import (
	"sync"

	"github.com/google/uuid"
)

const actionAddItem = "add_item"

// ChatState - where a chat is inside a multi-step command
type ChatState struct {
	Action       string
	Step         int
	IngredientID uuid.UUID
	Ingredient   string
}

// ChatFSM хранит состояния всех чатов
type ChatFSM struct {
	mu     sync.Mutex
	states map[int64]*ChatState
}

func NewChatFSM() *ChatFSM {
	return &ChatFSM{states: make(map[int64]*ChatState)}
}

// Получить состояние
func (fsm *ChatFSM) GetState(chatID int64) (*ChatState, bool) {
	fsm.mu.Lock()
	defer fsm.mu.Unlock()
	state, ok := fsm.states[chatID]
	return state, ok
}

// Установить состояние
func (fsm *ChatFSM) SetState(chatID int64, state *ChatState) {
	fsm.mu.Lock()
	defer fsm.mu.Unlock()
	fsm.states[chatID] = state
}

// Удалить состояние
func (fsm *ChatFSM) DeleteState(chatID int64) {
	fsm.mu.Lock()
	defer fsm.mu.Unlock()
	delete(fsm.states, chatID)
}
