package qa

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Responder 按线上后端的预置消息策略回答问题：简单问候与致谢走固定话术，
// 命中知识条目的珍珠问题走条目答案，其余问题走兜底话术。
type Responder struct{}

// NewResponder creates the canned-answer responder.
func NewResponder() *Responder {
	return &Responder{}
}

const (
	greetingReply = "你好！我是悦华珍珠AI助手宝儿，可以回答你任何和珍珠相关的问题。关于珍珠的品种、鉴别、历史、佩戴、护理等，如果你有任何疑问，欢迎随时提问！"
	thanksReply   = "不客气！很高兴能为您解答。如果您以后还有任何关于珍珠的问题，随时欢迎来咨询我。祝您生活愉快！"
	fallbackReply = "这个问题我需要想一想。我主要擅长珍珠相关的知识，欢迎问我珍珠的品种、鉴别、保养等问题！"
)

var greetingKeywords = []string{
	"你好", "您好", "hello", "hi", "嗨", "哈喽",
	"早上好", "下午好", "晚上好", "晚安",
	"在吗", "在不在", "在线吗",
	"hey", "嘿",
}

var thanksKeywords = []string{
	"谢谢", "谢了", "感谢", "多谢", "谢谢你", "谢谢您",
	"感谢你", "感谢您", "非常感谢", "十分感谢",
	"thanks", "thank you", "thx", "ty", "thks",
	"谢", "谢啦", "辛苦了", "辛苦", "赞", "cool",
	"棒", "好的", "ok", "okay",
}

// entry maps question keywords to one canned answer.
type entry struct {
	keywords []string
	answer   string
}

var knowledge = []entry{
	{
		keywords: []string{"成分", "碳酸钙"},
		answer:   "珍珠的主要成分是碳酸钙，约占90%以上，此外还含有少量的壳角蛋白和水分。",
	},
	{
		keywords: []string{"小米珠"},
		answer:   "小米珠是直径在2-4毫米左右的小规格珍珠，因形似小米粒得名，常用于多层叠戴和精细串饰。",
	},
	{
		keywords: []string{"淡水", "海水"},
		answer:   "淡水珍珠产自河湖中的蚌类，产量高、形状多样；海水珍珠产自海洋中的贝类，圆度和光泽普遍更好，价格也更高。",
	},
	{
		keywords: []string{"保养", "护理", "清洗"},
		answer:   "珍珠硬度低且怕酸碱，佩戴后用软布轻拭，避免接触香水、汗液和化妆品，单独存放在软布袋中即可。",
	},
	{
		keywords: []string{"鉴别", "真假", "辨别"},
		answer:   "可以用牙齿轻磨珍珠表面，真珍珠有砂感而仿珠光滑；真珍珠表面在放大镜下还能看到天然生长纹理。",
	},
}

// IsGreeting reports whether text is a short standalone greeting.
func (r *Responder) IsGreeting(text string) bool {
	cleaned := strings.ToLower(strings.TrimSpace(text))
	if cleaned == "" {
		return false
	}

	// 过长的文本大概率不是简单问候。
	if utf8.RuneCountInString(cleaned) > 6 {
		return false
	}

	for _, keyword := range greetingKeywords {
		if strings.Contains(cleaned, keyword) {
			return true
		}
	}
	return false
}

// IsThanks reports whether text is a short thanks expression. Chinese text
// gets a tighter length limit than English.
func (r *Responder) IsThanks(text string) bool {
	cleaned := strings.ToLower(strings.TrimSpace(text))
	if cleaned == "" {
		return false
	}

	maxLen := 10
	if containsHan(cleaned) {
		maxLen = 6
	}
	if utf8.RuneCountInString(cleaned) > maxLen {
		return false
	}

	for _, keyword := range thanksKeywords {
		if strings.Contains(cleaned, keyword) {
			return true
		}
	}
	return false
}

// Answer returns the canned answer for question. It always answers.
func (r *Responder) Answer(question string) string {
	if r.IsGreeting(question) {
		return greetingReply
	}
	if r.IsThanks(question) {
		return thanksReply
	}

	for _, e := range knowledge {
		for _, keyword := range e.keywords {
			if strings.Contains(question, keyword) {
				return e.answer
			}
		}
	}
	return fallbackReply
}

func containsHan(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}
