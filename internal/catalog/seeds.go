package catalog

import "github.com/finwell/finhealth/internal/model"

// builtinContent returns the seed translations shipped with the binary.
// Arabic coverage is intentionally partial for some question ids; missing
// entries exercise the default-language fallback path.
func builtinContent() []model.ContentEntry {
	ar := func(typ model.ContentType, id, title, text string, steps ...string) model.ContentEntry {
		return model.ContentEntry{
			Type: typ, ContentID: id, Language: model.LangArabic,
			Title: title, Text: text, ActionSteps: steps, Active: true,
		}
	}

	en := func(id, text string) model.ContentEntry {
		return model.ContentEntry{
			Type: model.ContentUI, ContentID: id, Language: model.LangEnglish,
			Text: text, Active: true,
		}
	}

	return []model.ContentEntry{
		// Pillar and UI labels.
		en("pillar_budgeting", "Budgeting"),
		en("pillar_savings", "Savings"),
		en("pillar_debt_management", "Debt Management"),
		en("pillar_financial_planning", "Financial Planning"),
		en("pillar_investment_knowledge", "Investment Knowledge"),
		en("ui_report_title", "Your Financial Health Report"),
		en("ui_overall_score", "Overall Score"),
		en("ui_risk_tolerance", "Risk Tolerance"),
		en("ui_recommendations", "Recommendations"),
		en("label_excellent", "Excellent"),
		en("label_good", "Good"),
		en("label_fair", "Fair"),
		en("label_poor", "Poor"),
		en("risk_low", "Low"),
		en("risk_moderate", "Moderate"),
		en("risk_high", "High"),

		ar(model.ContentUI, "pillar_budgeting", "", "إعداد الميزانية"),
		ar(model.ContentUI, "pillar_savings", "", "الادخار"),
		ar(model.ContentUI, "pillar_debt_management", "", "إدارة الديون"),
		ar(model.ContentUI, "pillar_financial_planning", "", "التخطيط المالي"),
		ar(model.ContentUI, "pillar_investment_knowledge", "", "المعرفة الاستثمارية"),
		ar(model.ContentUI, "ui_report_title", "", "تقرير صحتك المالية"),
		ar(model.ContentUI, "ui_overall_score", "", "النتيجة الإجمالية"),
		ar(model.ContentUI, "ui_risk_tolerance", "", "درجة تحمل المخاطر"),
		ar(model.ContentUI, "ui_recommendations", "", "التوصيات"),
		ar(model.ContentUI, "label_excellent", "", "ممتاز"),
		ar(model.ContentUI, "label_good", "", "جيد"),
		ar(model.ContentUI, "label_fair", "", "مقبول"),
		ar(model.ContentUI, "label_poor", "", "ضعيف"),
		ar(model.ContentUI, "risk_low", "", "منخفضة"),
		ar(model.ContentUI, "risk_moderate", "", "متوسطة"),
		ar(model.ContentUI, "risk_high", "", "مرتفعة"),

		// Questions (partial coverage).
		ar(model.ContentQuestion, "q_budget_tracking", "",
			"ألتزم بميزانية شهرية وأتابع مصروفاتي."),
		ar(model.ContentQuestion, "q_spending_control", "",
			"أنفق أقل مما أكسب كل شهر."),
		ar(model.ContentQuestion, "q_savings_rate", "",
			"أدخر جزءًا ثابتًا من دخلي كل شهر."),
		ar(model.ContentQuestion, "q_emergency_fund", "",
			"لدي صندوق طوارئ يغطي نفقات ثلاثة أشهر على الأقل."),
		ar(model.ContentQuestion, "q_payment_history", "",
			"أسدد جميع فواتيري وأقساط قروضي في موعدها."),
		ar(model.ContentQuestion, "q_retirement_planning", "",
			"أساهم بانتظام في مدخرات التقاعد."),

		// Recommendation templates.
		ar(model.ContentRecommendation, "tpl_budget_monthly",
			"أنشئ ميزانية شهرية مفصلة",
			"ابدأ بتتبع دخلك ومصروفاتك للتحكم بشكل أفضل في أموالك.",
			"اكتب جميع مصادر دخلك الشهري",
			"تتبع مصروفاتك لمدة شهر كامل",
			"صنف المصروفات حسب الفئة",
			"حدد سقفًا للإنفاق في كل فئة",
			"راجع الميزانية وعدلها شهريًا"),
		ar(model.ContentRecommendation, "tpl_budget_503020",
			"اتبع قاعدة 50/30/20",
			"خصص 50% من دخلك للضروريات و30% للرغبات و20% للادخار وسداد الديون.",
			"احسب دخلك الشهري الصافي",
			"خصص 50% للمصروفات الأساسية",
			"اجعل 30% للإنفاق الاختياري",
			"وجه 20% للادخار وسداد الديون"),
		ar(model.ContentRecommendation, "tpl_savings_emergency",
			"كوّن صندوق طوارئ",
			"ابدأ بادخار مبلغ صغير شهريًا حتى تغطي نفقات ثلاثة إلى ستة أشهر.",
			"افتح حساب توفير مستقلًا للطوارئ",
			"ابدأ بمبلغ شهري ثابت صغير",
			"فعّل التحويل التلقائي إلى الصندوق",
			"واصل حتى تغطي نفقات 3-6 أشهر"),
		ar(model.ContentRecommendation, "tpl_savings_automate",
			"فعّل الادخار التلقائي",
			"اضبط تحويلات تلقائية إلى حساب التوفير لجعل الادخار عادة ثابتة.",
			"اضبط تحويلًا تلقائيًا يوم صرف الراتب",
			"ابدأ بنسبة 10% من الدخل إن أمكن",
			"راجع المبالغ وزدها كل ربع سنة"),
		ar(model.ContentRecommendation, "tpl_debt_strategy",
			"ضع خطة لسداد الديون",
			"اكتب جميع ديونك واتبع خطة منتظمة للسداد بطريقة كرة الثلج أو الانهيار.",
			"اكتب جميع الديون بأرصدتها وفوائدها",
			"اختر طريقة السداد المناسبة لك",
			"سدد الحد الأدنى لجميع الديون",
			"وجه أي فائض نحو الدين المستهدف"),
		ar(model.ContentRecommendation, "tpl_debt_credit_monitor",
			"راقب تقييمك الائتماني",
			"تابع تقريرك الائتماني بانتظام وسدد فواتيرك في موعدها.",
			"اطلب تقريرك الائتماني سنويًا",
			"سدد جميع الفواتير في موعدها",
			"أبقِ استخدام بطاقتك الائتمانية أقل من 30%"),
		ar(model.ContentRecommendation, "tpl_planning_smart_goals",
			"حدد أهدافًا مالية ذكية",
			"ضع أهدافًا محددة وقابلة للقياس لسنة وخمس وعشر سنوات قادمة.",
			"اكتب أهدافك قصيرة المدى",
			"حدد أهدافك متوسطة المدى",
			"ضع أهدافك طويلة المدى",
			"اربط كل هدف بمبلغ وتاريخ محددين"),
		ar(model.ContentRecommendation, "tpl_planning_retirement_early",
			"ابدأ التخطيط للتقاعد مبكرًا",
			"الادخار المبكر للتقاعد يمنحك قوة الفائدة المركبة عبر السنوات.",
			"ساهم في نظام التقاعد في جهة عملك",
			"افتح حساب تقاعد شخصيًا",
			"ادخر 10-15% من دخلك للتقاعد"),
		ar(model.ContentRecommendation, "tpl_invest_basics",
			"تعلم أساسيات الاستثمار",
			"افهم أنواع الاستثمار والعلاقة بين المخاطرة والعائد قبل استثمار أموالك.",
			"اقرأ عن أنواع الاستثمار المختلفة",
			"افهم العلاقة بين المخاطرة والعائد",
			"تعلم مبدأ التنويع"),
		ar(model.ContentRecommendation, "tpl_invest_index_funds",
			"ابدأ بصناديق المؤشرات",
			"تمنحك صناديق المؤشرات منخفضة التكلفة تنويعًا جيدًا بمخاطر معتدلة.",
			"افتح حساب وساطة",
			"ابحث في صناديق المؤشرات المحلية والعالمية",
			"ابدأ باستثمارات شهرية صغيرة"),
	}
}
