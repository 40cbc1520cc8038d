package pipeline

// latexControlWords are LaTeX commands starting with n, r or t, collected
// from treeblood's symbol and command tables plus the text, spacing and
// macro commands it handles separately. A backslash run followed by one of
// these words is math, not an escaped control character.
var latexControlWords = wordSet(
	"nBumpeq", "nLeftarrow", "nLeftrightarrow", "nRightarrow", "nVDash",
	"nVdash", "nabla", "napprox", "natural", "nbumpeq", "ncong", "ne",
	"nearrow", "neg", "neq", "neqsim", "nequiv", "newcommand", "newenvironment",
	"newline", "nexists", "ngeq", "ngeqq", "ngeqslant", "ngtr", "ni",
	"nleftarrow", "nleftrightarrow", "nleq", "nleqq", "nleqslant", "nless",
	"nmid", "nobreakspace", "nolimits", "nolinebreak", "nonumber", "normalsize",
	"not", "notag", "notin", "nparallel", "nprec", "npreceq", "nprecsim",
	"nrightarrow", "nshortmid", "nshortparallel", "nsim", "nsubset",
	"nsubseteq", "nsubseteqq", "nsucc", "nsucceq", "nsuccsim", "nsupset",
	"nsupseteq", "nsupseteqq", "ntriangleleft", "ntrianglelefteq",
	"ntriangleright", "ntrianglerighteq", "nu", "nvDash", "nvdash", "nwarrow",
	"rVert", "raisebox", "rangle", "rbrace", "rbrack", "rceil", "ref",
	"renewcommand", "rfloor", "rgroup", "rho", "right", "rightangle",
	"rightarrow", "rightarrowtail", "rightharpoondown", "rightharpoonup",
	"rightleftarrows", "rightleftharpoons", "rightrightarrows",
	"rightsquigarrow", "rightthreetimes", "risingdotseq", "rlap", "rm",
	"rmoustache", "root", "rrbracket", "rtimes", "rule", "rvert",
	"tag", "tan", "tanh", "tau", "tbinom", "text", "textasciitilde",
	"textbackslash", "textbf", "textcircled", "textcolor", "textdegree",
	"textemdash", "textendash", "textgreater", "textit", "textless", "textmd",
	"textnormal", "textrm", "textsc", "textsf", "textsl", "textstyle", "texttt",
	"textup", "tfrac", "therefore", "theta", "thickapprox", "thicksim",
	"thickspace", "thinspace", "tilde", "times", "tiny", "to", "top",
	"triangle", "triangledown", "triangleleft", "trianglelefteq",
	"triangleq", "triangleright", "trianglerighteq", "tt", "twoheadleftarrow",
	"twoheadrightarrow",
)

func wordSet(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}
