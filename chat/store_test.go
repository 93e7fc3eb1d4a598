package chat

import "testing"

func TestStoreAppendOrder(t *testing.T) {
	store := NewStore()
	first := NewUserMessage("one")
	second := NewAssistantMessage("two")
	store.Append(first)
	store.Append(second)

	messages := store.Messages()
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	if messages[0].ID != first.ID || messages[1].ID != second.ID {
		t.Error("messages out of append order")
	}
}

func TestStoreClearThenAppend(t *testing.T) {
	store := NewStore()
	store.Append(NewUserMessage("before"))
	store.Clear()

	a := NewUserMessage("a")
	b := NewUserMessage("b")
	store.Append(a)
	store.Append(b)

	messages := store.Messages()
	if len(messages) != 2 {
		t.Fatalf("expected exactly the appended messages, got %d", len(messages))
	}
	if messages[0].ID != a.ID || messages[1].ID != b.ID {
		t.Error("messages out of call order after clear")
	}
}

func TestStoreDoubleClearIsNoop(t *testing.T) {
	store := NewStore()
	store.Append(NewUserMessage("x"))
	store.Clear()
	store.Clear()
	if store.Len() != 0 {
		t.Errorf("expected empty store, got %d messages", store.Len())
	}
}

func TestStoreMessagesReturnsCopy(t *testing.T) {
	store := NewStore()
	store.Append(NewUserMessage("original"))

	messages := store.Messages()
	messages[0].Content = "mutated"

	if store.Messages()[0].Content != "original" {
		t.Error("external mutation leaked into the store")
	}
}

func TestStoreCopiesCodeBlocks(t *testing.T) {
	store := NewStore()
	store.Append(NewAssistantMessage("```js\nf()\n```"))

	messages := store.Messages()
	messages[0].CodeBlocks[0].Code = "mutated()"

	if store.Messages()[0].CodeBlocks[0].Code != "f()\n" {
		t.Error("block mutation leaked into the store via Messages")
	}

	last, _ := store.LastAssistant()
	last.CodeBlocks[0].Language = "rust"
	if got, _ := store.LastAssistant(); got.CodeBlocks[0].Language != "js" {
		t.Error("block mutation leaked into the store via LastAssistant")
	}
}

func TestLastAssistant(t *testing.T) {
	store := NewStore()
	if _, ok := store.LastAssistant(); ok {
		t.Error("expected no assistant message in empty store")
	}

	store.Append(NewUserMessage("q"))
	older := NewAssistantMessage("first reply")
	newer := NewAssistantMessage("second reply")
	store.Append(older)
	store.Append(NewUserMessage("q2"))
	store.Append(newer)

	got, ok := store.LastAssistant()
	if !ok || got.ID != newer.ID {
		t.Error("expected the most recent assistant message")
	}
}

func TestUserMessageNeverCarriesCodeBlocks(t *testing.T) {
	msg := NewUserMessage("```js\ncode()\n```")
	if len(msg.CodeBlocks) != 0 {
		t.Error("user messages must not carry code blocks")
	}
}

func TestAssistantMessageExtractsBlocks(t *testing.T) {
	msg := NewAssistantMessage("here\n```css\nbody{}\n```")
	if len(msg.CodeBlocks) != 1 || msg.CodeBlocks[0].Language != "css" {
		t.Errorf("expected one css block, got %+v", msg.CodeBlocks)
	}
}
