package anki

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fyerfyer/card-gen-system/internal/cards"
)

// DeckJSON 牌组的JSON交换格式
type DeckJSON struct {
	DeckName string       `json:"deck_name"`
	Cards    []cards.Card `json:"cards"`
}

// ExportJSON 将.apkg牌组导出为JSON文件，返回输出路径
// outputPath为空时使用与牌组同名的.json文件
func ExportJSON(deckPath string, outputPath string) (string, error) {
	deck, err := ReadDeck(deckPath)
	if err != nil {
		return "", err
	}

	if outputPath == "" {
		outputPath = strings.TrimSuffix(deckPath, ".apkg") + ".json"
	}

	payload := DeckJSON{
		DeckName: deck.Name,
		Cards:    deck.Cards,
	}

	data, err := json.MarshalIndent(payload, "", "    ")
	if err != nil {
		return "", fmt.Errorf("failed to encode deck: %w", err)
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write deck json: %w", err)
	}
	return outputPath, nil
}

// ImportJSON 从JSON文件导入牌组数据
// 缺少deck_name时使用"Imported Deck"
func ImportJSON(jsonPath string) (*Deck, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("json file not found: %s", jsonPath)
	}

	return DecodeJSON(data)
}

// DecodeJSON 解码JSON格式的牌组数据
func DecodeJSON(data []byte) (*Deck, error) {
	var payload DeckJSON
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode deck json: %w", err)
	}

	name := payload.DeckName
	if name == "" {
		name = "Imported Deck"
	}

	return &Deck{
		Name:  name,
		Cards: payload.Cards,
	}, nil
}
