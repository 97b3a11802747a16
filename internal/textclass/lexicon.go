package textclass

// Condensed NRC-style word-association lexicon covering the eight discrete
// emotion categories. Valence-only associations (positive/negative) are
// deliberately omitted; VADER's compound score carries that signal.
var emotionLexicon = map[string][]string{
	// anger
	"angry":       {"anger", "disgust"},
	"furious":     {"anger"},
	"hate":        {"anger", "disgust"},
	"rage":        {"anger"},
	"annoying":    {"anger"},
	"annoyed":     {"anger"},
	"mad":         {"anger"},
	"outrage":     {"anger", "disgust"},
	"fight":       {"anger", "fear"},
	"attack":      {"anger", "fear"},
	"insult":      {"anger", "disgust"},
	"hostile":     {"anger", "fear"},
	"cruel":       {"anger", "disgust", "sadness"},
	"violent":     {"anger", "fear"},
	"threatening": {"anger", "fear"},

	// anticipation
	"anticipation": {"anticipation"},
	"excited":      {"anticipation", "joy"},
	"eager":        {"anticipation"},
	"hype":         {"anticipation", "joy"},
	"hyped":        {"anticipation", "joy"},
	"waiting":      {"anticipation"},
	"soon":         {"anticipation"},
	"upcoming":     {"anticipation"},
	"expect":       {"anticipation"},
	"hope":         {"anticipation", "trust"},
	"plan":         {"anticipation"},
	"ready":        {"anticipation"},
	"curious":      {"anticipation", "surprise"},

	// disgust
	"disgusting": {"disgust"},
	"gross":      {"disgust"},
	"nasty":      {"disgust"},
	"awful":      {"disgust", "sadness"},
	"horrible":   {"disgust", "fear"},
	"ugly":       {"disgust"},
	"rotten":     {"disgust"},
	"cringe":     {"disgust"},
	"vile":       {"disgust", "anger"},
	"filthy":     {"disgust"},

	// fear
	"afraid":     {"fear"},
	"scary":      {"fear"},
	"scared":     {"fear"},
	"terrified":  {"fear"},
	"terrifying": {"fear", "surprise"},
	"creepy":     {"fear"},
	"panic":      {"fear"},
	"danger":     {"fear"},
	"dangerous":  {"fear"},
	"nightmare":  {"fear", "sadness"},
	"horror":     {"fear", "disgust"},
	"worried":    {"fear", "sadness"},
	"anxious":    {"fear", "anticipation"},

	// joy
	"happy":     {"joy"},
	"joy":       {"joy"},
	"love":      {"joy", "trust"},
	"lovely":    {"joy", "trust"},
	"wonderful": {"joy", "trust"},
	"beautiful": {"joy"},
	"amazing":   {"joy", "surprise"},
	"awesome":   {"joy"},
	"great":     {"joy"},
	"fun":       {"joy", "anticipation"},
	"funny":     {"joy", "surprise"},
	"hilarious": {"joy", "surprise"},
	"laugh":     {"joy"},
	"laughing":  {"joy"},
	"smile":     {"joy"},
	"cute":      {"joy"},
	"adorable":  {"joy", "trust"},
	"perfect":   {"joy", "trust"},
	"win":       {"joy", "anticipation"},
	"winning":   {"joy", "anticipation"},
	"celebrate": {"joy", "anticipation"},
	"blessed":   {"joy", "trust"},
	"vibes":     {"joy"},

	// sadness
	"sad":          {"sadness"},
	"crying":       {"sadness"},
	"cry":          {"sadness"},
	"tears":        {"sadness"},
	"heartbroken":  {"sadness"},
	"depressing":   {"sadness"},
	"lonely":       {"sadness"},
	"miss":         {"sadness"},
	"grief":        {"sadness"},
	"loss":         {"sadness"},
	"hurt":         {"sadness", "anger"},
	"pain":         {"sadness", "fear"},
	"tragic":       {"sadness", "fear"},
	"unfortunate":  {"sadness"},
	"disappointed": {"sadness", "anger"},

	// surprise
	"wow":          {"surprise"},
	"omg":          {"surprise"},
	"shocking":     {"surprise", "fear"},
	"shocked":      {"surprise"},
	"unexpected":   {"surprise"},
	"unbelievable": {"surprise"},
	"insane":       {"surprise"},
	"crazy":        {"surprise"},
	"wild":         {"surprise"},
	"sudden":       {"surprise"},
	"plot":         {"surprise"},
	"twist":        {"surprise"},

	// trust
	"trust":       {"trust"},
	"honest":      {"trust"},
	"real":        {"trust"},
	"genuine":     {"trust"},
	"reliable":    {"trust"},
	"respect":     {"trust"},
	"loyal":       {"trust"},
	"wholesome":   {"trust", "joy"},
	"inspiring":   {"trust", "joy", "anticipation"},
	"legend":      {"trust", "joy"},
	"king":        {"trust"},
	"queen":       {"trust"},
	"goat":        {"trust", "joy"},
	"underrated":  {"trust"},
	"deserve":     {"trust", "anticipation"},
	"deserves":    {"trust", "anticipation"},
	"talented":    {"trust", "joy"},
	"skill":       {"trust"},
	"masterpiece": {"trust", "joy", "surprise"},
}
