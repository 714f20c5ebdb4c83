package responses

// Category identifies one keyword taxonomy bucket.
type Category string

const (
	CategoryGreetings     Category = "greetings"
	CategoryThanks        Category = "thanks"
	CategoryGoodMorning   Category = "good_morning"
	CategoryGoodEvening   Category = "good_evening"
	CategoryEncouragement Category = "encouragement"
	CategoryHelp          Category = "help"
)

// KeywordSet binds one category to its trigger keywords. Order matters
// twice: sets are tested in slice order (category precedence), and
// keywords are tested in slice order within a set.
type KeywordSet struct {
	Category Category `json:"category"`
	Keywords []string `json:"keywords"`
}

// TriviaQuestion is one entry of the trivia bank. The answer check is
// case-insensitive substring containment against the reply.
type TriviaQuestion struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Tables is the full response data set. All fields are optional in an
// overrides document; empty sections keep the built-in data.
type Tables struct {
	Keywords    []KeywordSet          `json:"keywords,omitempty"`
	Responses   map[Category][]string `json:"responses,omitempty"`
	TimeOfDay   map[string][]string   `json:"time_of_day,omitempty"`
	Interactive map[string][]string   `json:"interactive,omitempty"`
	Emotions    map[string][]string   `json:"emotions,omitempty"`
	Emojis      map[string][]string   `json:"emojis,omitempty"`
	Questions   []string              `json:"questions,omitempty"`
	Luck        []string              `json:"luck,omitempty"`
	Prayers     []string              `json:"prayers,omitempty"`
	Trivia      []TriviaQuestion      `json:"trivia,omitempty"`
}

// builtin returns the built-in Arabic data set.
func builtin() *Tables {
	return &Tables{
		// Precedence is the declaration order below. greetings and
		// good_morning share ambiguous substrings; keep this order stable.
		Keywords: []KeywordSet{
			{CategoryGreetings, []string{"مرحبا", "أهلا", "السلام عليكم", "هلا", "اهلين", "مرحباً", "أهلاً"}},
			{CategoryThanks, []string{"شكرا", "شكراً", "مشكور", "يعطيك العافية", "الله يعطيك العافية"}},
			{CategoryGoodMorning, []string{"صباح الخير", "صباح النور", "صباحكم خير"}},
			{CategoryGoodEvening, []string{"مساء الخير", "مساء النور", "مساءكم خير"}},
			{CategoryEncouragement, []string{"أحسنت", "ممتاز", "رائع", "جميل", "مبدع"}},
			{CategoryHelp, []string{"مساعدة", "ساعدني", "أحتاج مساعدة", "كيف"}},
		},
		Responses: map[Category][]string{
			CategoryGreetings: {
				"أهلاً وسهلاً! 👋",
				"مرحباً بك! 😊",
				"السلام عليكم ورحمة الله وبركاته! 🌟",
				"أهلاً بك في الخادم! 🎉",
				"مرحباً! كيف حالك اليوم؟ 😄",
			},
			CategoryThanks: {
				"العفو! 😊",
				"لا شكر على واجب! 💙",
				"أهلاً وسهلاً! 🌟",
				"دائماً في الخدمة! 👍",
				"بالتوفيق! ✨",
			},
			CategoryGoodMorning: {
				"صباح الخير! ☀️",
				"صباح النور! 🌅",
				"صباحك سعيد! 😊",
				"أسعد الله صباحك! 🌸",
				"صباح الورد! 🌹",
			},
			CategoryGoodEvening: {
				"مساء الخير! 🌙",
				"مساء النور! ⭐",
				"مساءك سعيد! 😊",
				"أسعد الله مساءك! 🌆",
				"مساء الورد! 🌺",
			},
			CategoryEncouragement: {
				"أحسنت! 👏",
				"ممتاز! 🌟",
				"رائع جداً! 🎉",
				"واصل التميز! 💪",
				"أنت مبدع! ✨",
			},
			CategoryHelp: {
				"كيف يمكنني مساعدتك؟ 🤔",
				"أنا هنا للمساعدة! 💙",
				"ما الذي تحتاج إليه؟ 😊",
				"تفضل، كيف أساعدك؟ 🙋‍♂️",
			},
		},
		TimeOfDay: map[string][]string{
			"morning": {
				"صباح الخير والنشاط! ☀️",
				"صباح مليء بالإنجازات! 🌅",
				"أسعد الله صباحك بكل خير! 🌸",
				"صباح البركة والتوفيق! ✨",
			},
			"afternoon": {
				"ظهيرة مباركة! ☀️",
				"نهارك سعيد! 😊",
				"أوقات مثمرة! 💪",
				"استمر في التميز! 🌟",
			},
			"evening": {
				"مساء الخير والراحة! 🌙",
				"مساء هادئ ومريح! 🌆",
				"أسعد الله مساءك! ⭐",
				"مساء مليء بالسكينة! 🌺",
			},
			"night": {
				"ليلة سعيدة! 🌙",
				"أحلام جميلة! ✨",
				"راحة مستحقة! 😴",
				"ليلة مباركة! 🌟",
			},
		},
		Interactive: map[string][]string{
			"compliments": {
				"أنت شخص رائع! 🌟",
				"تستحق كل التقدير! 👏",
				"مبدع كما عهدناك! ✨",
				"واصل هذا التميز! 💪",
			},
			"motivation": {
				"لا تستسلم أبداً! 💪",
				"أنت أقوى مما تتخيل! 🦁",
				"النجاح ينتظرك! 🎯",
				"كل خطوة تقربك من الهدف! 🚀",
			},
			"wisdom": {
				"الصبر مفتاح الفرج 🗝️",
				"العلم نور والجهل ظلام 💡",
				"من جد وجد ومن زرع حصد 🌱",
				"الطريق إلى النجاح يبدأ بخطوة واحدة 👣",
			},
			"fun": {
				"الضحك يطيل العمر! 😄",
				"ابتسامتك تضيء اليوم! 😊",
				"المرح جزء من الحياة! 🎉",
				"السعادة معدية، انشرها! 😁",
			},
		},
		Emotions: map[string][]string{
			"happy": {
				"أراك سعيداً اليوم! 😊",
				"السعادة تشع منك! ✨",
				"فرحتك تسعدني! 🎉",
				"استمر في هذا المزاج الرائع! 😄",
			},
			"sad": {
				"أتمنى أن تشعر بتحسن قريباً 💙",
				"الأيام الصعبة تمر، والأجمل قادم 🌈",
				"أنا هنا إذا احتجت للحديث 🤗",
				"كل شيء سيكون بخير بإذن الله 🙏",
			},
			"excited": {
				"أشاركك الحماس! 🎉",
				"طاقتك الإيجابية رائعة! ⚡",
				"هذا الحماس معدي! 🔥",
				"واصل هذه الروح المتفائلة! 🚀",
			},
			"tired": {
				"خذ قسطاً من الراحة 😴",
				"الراحة حق مشروع 🛋️",
				"أنت تستحق الاستراحة 💤",
				"اعتن بنفسك أولاً 💙",
			},
		},
		Emojis: map[string][]string{
			"celebration": {"🎉", "🎊", "✨", "🌟", "💫", "🎈"},
			"love":        {"❤️", "💙", "💚", "💛", "💜", "🧡", "💖"},
			"nature":      {"🌸", "🌺", "🌻", "🌹", "🌷", "🌿", "🍃"},
			"success":     {"👏", "💪", "🏆", "🥇", "🎯", "🚀", "⭐"},
			"peace":       {"☮️", "🕊️", "🤲", "🙏", "💙", "🌈"},
			"wisdom":      {"📚", "💡", "🧠", "🔍", "📖", "✍️"},
			"time":        {"⏰", "🕐", "⌚", "📅", "🗓️", "⏳"},
			"weather":     {"☀️", "🌙", "⭐", "🌅", "🌆", "🌈", "☁️"},
		},
		Questions: []string{
			"كيف كان يومك؟ 🤔",
			"ما هو أفضل شيء حدث لك اليوم؟ ✨",
			"هل تعلمت شيئاً جديداً اليوم؟ 📚",
			"ما هي خططك للغد؟ 📅",
			"ما هو هدفك الحالي؟ 🎯",
		},
		Luck: []string{
			"🍀 حظك رائع اليوم!",
			"⭐ حظ جيد ينتظرك",
			"🌟 حظك متوسط، لكن الأمل موجود",
			"🎲 حظك متقلب اليوم",
			"💫 حظك في تحسن مستمر",
		},
		Prayers: []string{
			"اللهم اهدنا فيمن هديت 🤲",
			"ربنا آتنا في الدنيا حسنة وفي الآخرة حسنة وقنا عذاب النار 🙏",
			"اللهم أعنا على ذكرك وشكرك وحسن عبادتك 💙",
			"ربنا اغفر لنا ذنوبنا وإسرافنا في أمرنا 🌟",
			"اللهم بارك لنا فيما رزقتنا ✨",
		},
		Trivia: []TriviaQuestion{
			{"ما هي عاصمة السعودية؟", "الرياض"},
			{"كم عدد أيام السنة؟", "365"},
			{"ما هو أكبر محيط في العالم؟", "الهادئ"},
			{"في أي قارة تقع مصر؟", "أفريقيا"},
			{"كم عدد ألوان قوس قزح؟", "7"},
		},
	}
}
