package assistant

import "strings"

type Mode string

const (
	ModeGeneral   Mode = "general"
	ModeTravel    Mode = "travel"
	ModeEmergency Mode = "emergency"
)

var systemPrompts = map[Mode]string{
	ModeGeneral:   "أنت مساعد ذكي ودود داخل تطبيق EverChat. أجب دائمًا باللغة العربية بإيجاز ووضوح.",
	ModeTravel:    "أنت مرشد سفر خبير داخل تطبيق EverChat. قدّم نصائح عملية عن الوجهات والتنقل والإقامة والسلامة أثناء السفر، وأجب باللغة العربية.",
	ModeEmergency: "أنت مساعد طوارئ داخل تطبيق EverChat. قدّم تعليمات إسعافات أولية وسلامة واضحة وقصيرة خطوة بخطوة، وذكّر المستخدم دائمًا بالاتصال بخدمات الطوارئ المحلية. أجب باللغة العربية.",
}

var fallbacks = map[Mode]string{
	ModeGeneral:   "عذرًا، المساعد غير متاح حاليًا. يرجى المحاولة مرة أخرى لاحقًا.",
	ModeTravel:    "عذرًا، لا يمكنني تقديم نصائح السفر الآن. يرجى المحاولة مرة أخرى لاحقًا.",
	ModeEmergency: "تعذر الوصول إلى المساعد. في حالة الطوارئ اتصل فورًا بخدمات الطوارئ المحلية أو استخدم زر SOS.",
}

// ParseMode приводит произвольную строку к известному режиму, по умолчанию general
func ParseMode(s string) Mode {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := systemPrompts[m]; ok {
		return m
	}
	return ModeGeneral
}

func (m Mode) SystemPrompt() string {
	return systemPrompts[ParseMode(string(m))]
}

func (m Mode) Fallback() string {
	return fallbacks[ParseMode(string(m))]
}
