package safety

// Keyword sets for the content policy, organized per language code. All
// languages are applied to every text regardless of the query's own
// language: a match in any list counts.
//
// safeContextKeywords are educational/medical phrases that always win over a
// blocked match in the same text, so "breast cancer screening" is never
// blocked by "breast" co-occurring in an adult-term list.

var safeContextKeywords = map[string][]string{
	"en": {
		"breast cancer", "cancer screening", "mammogram", "anatomy",
		"sexual health", "sex education", "reproductive health",
		"pregnancy", "menopause", "puberty", "gynecology", "urology",
		"sexually transmitted", "contraception", "biology", "medical",
		"breastfeeding", "prostate",
	},
	"es": {
		"cancer de mama", "educacion sexual", "salud sexual", "anatomia",
		"embarazo", "ginecologia", "lactancia",
	},
	"fr": {
		"cancer du sein", "education sexuelle", "sante sexuelle",
		"anatomie", "grossesse",
	},
	"de": {
		"brustkrebs", "sexualkunde", "schwangerschaft", "anatomie",
	},
	"pt": {
		"cancer de mama", "educacao sexual", "gravidez",
	},
	"ar": {
		"سرطان الثدي", "الصحة الجنسية", "التثقيف الجنسي", "الحمل",
	},
	"zh": {
		"乳腺癌", "性教育", "生殖健康", "怀孕",
	},
	"ja": {
		"乳がん", "性教育", "妊娠",
	},
	"ru": {
		"рак груди", "половое воспитание", "беременность",
	},
	"hi": {
		"स्तन कैंसर", "यौन शिक्षा", "गर्भावस्था",
	},
}

var blockedKeywords = map[string][]string{
	"en": {
		"porn", "pornography", "xxx", "hentai", "nude pics", "naked pics",
		"sex video", "sex videos", "adult video", "adult videos", "nsfw",
		"erotic", "camgirl", "escort service", "onlyfans leak",
	},
	"es": {
		"porno", "pornografia", "video sexual", "desnudas",
	},
	"fr": {
		"porno", "pornographie", "video de sexe",
	},
	"de": {
		"porno", "pornografie", "sexvideo",
	},
	"pt": {
		"porno", "pornografia",
	},
	"ar": {
		"اباحية", "افلام سكس", "سكس",
	},
	"zh": {
		"色情", "成人影片", "无码",
	},
	"ja": {
		"ポルノ", "アダルト動画", "エロ動画",
	},
	"ru": {
		"порно", "эротика видео",
	},
	"hi": {
		"अश्लील", "पोर्न",
	},
	"th": {
		"หนังโป๊", "คลิปโป๊",
	},
}

// blockedDomains are known adult-content apex hostnames. An item is dropped
// when its link host equals one of these or is any subdomain of one, after a
// leading "www." is stripped.
var blockedDomains = []string{
	"pornhub.com",
	"xvideos.com",
	"xnxx.com",
	"xhamster.com",
	"redtube.com",
	"youporn.com",
	"chaturbate.com",
	"onlyfans.com",
	"spankbang.com",
	"rule34.xxx",
	"e-hentai.org",
	"livejasmin.com",
	"stripchat.com",
	"brazzers.com",
	"fansly.com",
}
