package anki

import (
	"encoding/json"
	"fmt"
)

// DefaultDeckName 未指定名称时使用的默认牌组名
const DefaultDeckName = "AI Study Cards"

// DefaultSourceInfo 未指定来源时写入Source字段的默认值
const DefaultSourceInfo = "AI Generated"

// 笔记模板名称
const noteTypeName = "AI Study Card"

// 问题面模板
const questionFormat = `<div class="card-front">
    <div class="question">{{Front}}</div>
    <div class="source">Source: {{Source}}</div>
</div>`

// 答案面模板
const answerFormat = `<div class="card-back">
    <div class="question">{{Front}}</div>
    <hr>
    <div class="answer">{{Back}}</div>
    <div class="metadata">
        <div class="source">Source: {{Source}}</div>
        <div class="created">Created: {{Created}}</div>
    </div>
</div>`

// 卡片样式
const cardCSS = `.card {
    font-family: "Arial", sans-serif;
    font-size: 16px;
    line-height: 1.5;
    color: #000000;
    background-color: #fafafa;
    padding: 20px;
    border-radius: 8px;
    max-width: 600px;
    margin: 0 auto;
}

.card-front, .card-back {
    text-align: center;
}

.question {
    font-size: 18px;
    font-weight: bold;
    margin-bottom: 20px;
    color: #000000;
    background-color: #ecf0f1;
    padding: 15px;
    border-radius: 5px;
    border-left: 4px solid #3498db;
}

.answer {
    font-size: 16px;
    margin: 20px 0;
    padding: 15px;
    background-color: #e8f5e8;
    border-radius: 5px;
    border-left: 4px solid #27ae60;
    text-align: left;
    color: #000000;
}

.source {
    font-size: 12px;
    color: #000000;
    font-style: italic;
    margin-top: 10px;
}

.metadata {
    margin-top: 20px;
    padding-top: 15px;
    border-top: 1px solid #bdc3c7;
    font-size: 11px;
    color: #000000;
}

.highlight {
    background-color: #fff3cd;
    border: 1px solid #ffeaa7;
    border-radius: 4px;
    padding: 8px;
    margin: 5px 0;
    color: #000000;
}

ul, ol {
    margin: 10px 0;
    padding-left: 20px;
    text-align: left;
    color: #000000;
}

code {
    background-color: #f8f9fa;
    border: 1px solid #e9ecef;
    border-radius: 3px;
    padding: 2px 6px;
    font-family: "Monaco", "Consolas", monospace;
    font-size: 14px;
    color: #000000;
}

blockquote {
    border-left: 4px solid #6c757d;
    margin: 10px 0;
    padding: 10px 15px;
    background-color: #f8f9fa;
    font-style: italic;
    color: #000000;
}`

// buildModelJSON 生成col.models列的JSON内容
// 笔记类型包含四个字段：问题、答案、来源、创建时间
func buildModelJSON(modelID, deckID, now int64) (string, error) {
	model := map[string]interface{}{
		"id":        modelID,
		"name":      noteTypeName,
		"did":       deckID,
		"mod":       now,
		"usn":       -1,
		"type":      0,
		"sortf":     0,
		"css":       cardCSS,
		"latexPre":  "\\documentclass[12pt]{article}\n\\special{papersize=3in,5in}\n\\usepackage[utf8]{inputenc}\n\\pagestyle{empty}\n\\begin{document}\n",
		"latexPost": "\\end{document}",
		"tags":      []string{},
		"vers":      []string{},
		"req":       []interface{}{[]interface{}{0, "all", []int{0}}},
		"flds": []map[string]interface{}{
			{"name": "Front", "ord": 0, "sticky": false, "rtl": false, "font": "Arial", "size": 20, "media": []string{}},
			{"name": "Back", "ord": 1, "sticky": false, "rtl": false, "font": "Arial", "size": 20, "media": []string{}},
			{"name": "Source", "ord": 2, "sticky": false, "rtl": false, "font": "Arial", "size": 20, "media": []string{}},
			{"name": "Created", "ord": 3, "sticky": false, "rtl": false, "font": "Arial", "size": 20, "media": []string{}},
		},
		"tmpls": []map[string]interface{}{
			{
				"name":  "Card 1",
				"ord":   0,
				"qfmt":  questionFormat,
				"afmt":  answerFormat,
				"bqfmt": "",
				"bafmt": "",
				"did":   nil,
			},
		},
	}

	data, err := json.Marshal(map[string]interface{}{
		fmt.Sprintf("%d", modelID): model,
	})
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// buildDecksJSON 生成col.decks列的JSON内容
// 保留id为1的默认牌组，目标牌组使用随机id
func buildDecksJSON(deckID, now int64, deckName string) (string, error) {
	defaultDeck := map[string]interface{}{
		"id":        1,
		"name":      "Default",
		"desc":      "",
		"mod":       now,
		"usn":       0,
		"collapsed": false,
		"dyn":       0,
		"conf":      1,
		"extendNew": 0,
		"extendRev": 50,
		"newToday":  []int{0, 0},
		"revToday":  []int{0, 0},
		"lrnToday":  []int{0, 0},
		"timeToday": []int{0, 0},
	}

	targetDeck := map[string]interface{}{
		"id":        deckID,
		"name":      deckName,
		"desc":      "",
		"mod":       now,
		"usn":       -1,
		"collapsed": false,
		"dyn":       0,
		"conf":      1,
		"extendNew": 0,
		"extendRev": 50,
		"newToday":  []int{0, 0},
		"revToday":  []int{0, 0},
		"lrnToday":  []int{0, 0},
		"timeToday": []int{0, 0},
	}

	data, err := json.Marshal(map[string]interface{}{
		"1":                       defaultDeck,
		fmt.Sprintf("%d", deckID): targetDeck,
	})
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// buildConfJSON 生成col.conf列的JSON内容
func buildConfJSON(modelID int64) (string, error) {
	conf := map[string]interface{}{
		"activeDecks":   []int{1},
		"addToCur":      true,
		"collapseTime":  1200,
		"curDeck":       1,
		"curModel":      fmt.Sprintf("%d", modelID),
		"dueCounts":     true,
		"estTimes":      true,
		"newBury":       true,
		"newSpread":     0,
		"nextPos":       1,
		"sortBackwards": false,
		"sortType":      "noteFld",
		"timeLim":       0,
	}

	data, err := json.Marshal(conf)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// buildDconfJSON 生成col.dconf列的JSON内容
func buildDconfJSON(now int64) (string, error) {
	dconf := map[string]interface{}{
		"1": map[string]interface{}{
			"id":       1,
			"name":     "Default",
			"mod":      now,
			"usn":      0,
			"autoplay": true,
			"dyn":      false,
			"maxTaken": 60,
			"replayq":  true,
			"timer":    0,
			"lapse": map[string]interface{}{
				"delays":      []int{10},
				"leechAction": 0,
				"leechFails":  8,
				"minInt":      1,
				"mult":        0,
			},
			"new": map[string]interface{}{
				"bury":          true,
				"delays":        []int{1, 10},
				"initialFactor": 2500,
				"ints":          []int{1, 4, 7},
				"order":         1,
				"perDay":        20,
				"separate":      true,
			},
			"rev": map[string]interface{}{
				"bury":     true,
				"ease4":    1.3,
				"fuzz":     0.05,
				"ivlFct":   1,
				"maxIvl":   36500,
				"minSpace": 1,
				"perDay":   100,
			},
		},
	}

	data, err := json.Marshal(dconf)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
