package ingredient

// DefaultTable 內建成分查表，啟動時建立一次
var DefaultTable = NewTable(defaultTableData)

var defaultTableData = TableData{
	// 一般認為安全、天然
	Safe: map[string]Entry{
		"organic":             {Description: "Grown without synthetic pesticides or fertilizers"},
		"whole grain":         {Description: "Contains all parts of the grain including the bran, germ, and endosperm"},
		"sprouted":            {Description: "Seeds that have been germinated, increasing nutritional value and digestibility"},
		"raw":                 {Description: "Unprocessed and uncooked, retaining natural enzymes and nutrients"},
		"honey":               {Description: "Natural sweetener produced by bees"},
		"maple syrup":         {Description: "Natural sweetener made from the sap of maple trees"},
		"olive oil":           {Description: "Oil extracted from olives, rich in monounsaturated fats"},
		"coconut oil":         {Description: "Oil extracted from coconuts, contains medium-chain triglycerides"},
		"sea salt":            {Description: "Salt produced from the evaporation of seawater, contains trace minerals"},
		"apple cider vinegar": {Description: "Fermented apple juice, contains beneficial bacteria and enzymes"},
		"niacin":              {Description: "Niacin, also known as Vitamin B3, is essential for converting food into energy and maintaining healthy skin, nerves, and digestion, making it generally beneficial when consumed in appropriate amounts"},
		"thiamin mononitrate": {Description: "Thiamin mononitrate, a synthetic form of Vitamin B1, is essential for energy metabolism and maintaining healthy nerve and heart function, making it generally beneficial when consumed in appropriate amounts"},
		// 常見 OCR 拼字錯誤
		"thiamin mononitate": {Description: "Thiamin mononitrate, a synthetic form of Vitamin B1, is essential for energy metabolism and maintaining healthy nerve and heart function, making it generally beneficial when consumed in appropriate amounts"},
		"riboflavin":         {Description: "Riboflavin, also known as Vitamin B2, is essential for energy production, cellular function, and maintaining healthy skin and vision, making it generally beneficial when consumed in appropriate amounts"},
		"folic acid":         {Description: "Folic acid, a synthetic form of Vitamin B9, is essential for DNA synthesis, cell growth, and preventing birth defects, making it generally beneficial when consumed in appropriate amounts"},
		"cheese cultures":    {Description: "Cheese cultures, which are specific bacteria strains used in cheesemaking, help develop the flavor and texture of cheese and can provide probiotics that support gut health when consumed in moderation"},
		"enzymes":            {Description: "Enzymes used in food production, such as those in cheese-making or bread baking, help with digestion and nutrient absorption, and are generally safe and beneficial when used in appropriate amounts"},
		"milk":               {Description: "Milk is a good source of essential nutrients like calcium, vitamin D, and protein, making it generally beneficial for bone health and overall nutrition when consumed in moderation"},
		"citric acid":        {Description: "Citric acid, a natural compound found in citrus fruits, is generally safe and beneficial as an acidity regulator and preservative when consumed in moderate amounts"},
		"onion powder":       {Description: "Onion powder is rich in antioxidants and nutrients that support heart health, immunity, and blood sugar regulation, making it a beneficial seasoning when used in moderation"},
		"garlic powder":      {Description: "Garlic powder is rich in antioxidants and compounds that support heart health, immunity, and overall well-being, making it a beneficial ingredient when used in moderation"},
		"buttermilk":         {Description: "Buttermilk is rich in probiotics, calcium, and vitamins, supporting gut health, bone strength, and overall well-being, making it a nutritious choice when consumed in moderation"},
		"soybean":            {Description: "A nutrient-dense source of plant-based protein and beneficial compounds, supporting heart health and reducing certain disease risks"},
		"cocoa powder":       {Description: "Rich in antioxidants and compounds that support heart and brain health, but benefits are reduced in processed forms"},
		"soy lecithin":       {Description: "Acts as an emulsifier and contains beneficial compounds like choline, supporting cellular and brain health"},
		"baking soda":        {Description: "Safe in small amounts and can aid digestion, but excessive use may cause health issues like stomach upset or electrolyte imbalance"},
	},

	// 需要留意或名稱具誤導性
	Caution: map[string]Entry{
		"natural flavors": {
			Description:  "Can include a wide range of processed additives derived from natural sources but heavily processed",
			Alternatives: []string{"specific named flavors", "spices", "herbs"},
		},
		"natural flavor": {
			Description:  "Can include a wide range of processed additives derived from natural sources but heavily processed",
			Alternatives: []string{"specific named flavors", "spices", "herbs"},
		},
		"wheat flour": {
			Description:  "Processed flour that may be stripped of nutrients, not the same as whole grain wheat flour",
			Alternatives: []string{"whole grain wheat flour", "sprouted wheat flour"},
		},
		"enriched flour": {
			Description:  "Refined flour with some nutrients added back in, but still lacking many original nutrients",
			Alternatives: []string{"whole grain flour", "almond flour", "coconut flour"},
		},
		"brown sugar": {
			Description:  "White sugar with molasses added for color and flavor, not significantly healthier than white sugar",
			Alternatives: []string{"coconut sugar", "date sugar", "maple syrup"},
		},
		"evaporated cane juice": {
			Description:  "Another name for sugar, attempting to sound healthier",
			Alternatives: []string{"honey", "maple syrup", "date sugar"},
		},
		"fruit juice concentrate": {
			Description:  "Concentrated fruit juice used as a sweetener, often with fiber and nutrients removed",
			Alternatives: []string{"whole fruit", "fruit puree"},
		},
		"modified food starch": {
			Description:  "Starch that has been chemically altered to change its properties",
			Alternatives: []string{"tapioca starch", "arrowroot powder"},
		},
		"soy protein isolate": {
			Description:  "Highly processed soy product that may contain residues from processing chemicals",
			Alternatives: []string{"whole soybeans", "tempeh", "minimally processed tofu"},
		},
		"whey protein concentrate": {
			Description:  "Processed dairy product that may contain hormones if not from organic sources",
			Alternatives: []string{"organic whey protein", "plant-based proteins"},
		},
		"maltodextrin": {
			Description:  "Highly processed carbohydrate used as a thickener or filler, can spike blood sugar",
			Alternatives: []string{"tapioca starch", "arrowroot powder"},
		},
		"ferrous sulfate":    {Description: "Ferrous sulfate is generally safe when used as an iron supplement to treat iron deficiency, but it can cause side effects like stomach pain, constipation, and nausea"},
		"vegetable oil":      {Description: "While vegetable oil can be a healthy source of fats, excessive consumption, especially of oils high in omega-6 fatty acids, can lead to health issues like inflammation and heart disease"},
		"canola oil":         {Description: "Canola oil is low in saturated fat and contains beneficial omega-3 fatty acids, but its high level of processing and potential presence of trans fats can raise health concerns"},
		"cheddar cheese":     {Description: "Cheddar cheese is rich in calcium and protein, but its high saturated fat and sodium content can pose health risks if consumed in excess"},
		"enriched cornmeal":  {Description: "Enriched cornmeal provides essential vitamins and minerals, but the synthetic nutrients added during enrichment may not be as beneficial as those found in whole foods"},
		"corn meal":          {Description: "Cornmeal is a good source of carbohydrates and provides some essential nutrients, but it lacks the fiber and nutrient density of whole grains"},
		"corn":               {Description: "Offers fiber and essential nutrients but can spike blood sugar levels, especially in processed forms"},
		"cheese seasoning":   {Description: "Cheese seasoning can enhance flavor, but it often contains high levels of sodium and artificial additives, which can pose health risks if consumed in excess"},
		"sunflower oil":      {Description: "Sunflower oil is rich in healthy fats like monounsaturated and polyunsaturated fats, but its high omega-6 content can contribute to inflammation if consumed in excess"},
		"made from corn":     {Description: "Corn-based ingredients can provide essential nutrients like fiber, vitamins, and antioxidants, but their health benefits vary depending on the level of processing and added ingredients"},
		"salt":               {Description: "Salt is essential for body functions like fluid balance and nerve transmission, but excessive consumption can lead to high blood pressure and other health risks"},
		"sugar":              {Description: "Sugar provides a quick source of energy, but excessive consumption can lead to health issues like weight gain, tooth decay, and an increased risk of chronic diseases such as diabetes"},
		"artifical color":    {Description: "Artificial colors are generally safe in regulated amounts, but some studies suggest potential links to hyperactivity in children and other health concerns, making moderation important"},
		"red 40 lake":        {Description: "Red 40 Lake, a synthetic food dye, is generally considered safe in regulated amounts, but it has been linked to potential behavioral issues in children and allergic reactions in sensitive individuals"},
		"yellow 6 lake":      {Description: "Yellow 6 Lake, a synthetic food dye, is generally considered safe in regulated amounts, but it has been linked to potential allergic reactions, behavioral issues in children, and other health concerns when consumed excessively"},
		"yellow 6":           {Description: "Yellow 6, a synthetic food dye, is generally considered safe in regulated amounts, but it has been associated with potential allergic reactions, hyperactivity in children, and other health concerns when consumed excessively"},
		"yellow 5":           {Description: "Yellow 5, also known as tartrazine, is generally considered safe in regulated amounts, but it has been linked to potential allergic reactions, hyperactivity in children, and other health concerns when consumed excessively"},
		"sodium diacetate":   {Description: "Sodium diacetate, commonly used as a preservative and flavoring agent, is generally safe in regulated amounts, but excessive consumption may lead to potential health concerns like acidity imbalance or irritation"},
		"disodium inosinate": {Description: "Disodium inosinate, a flavor enhancer often used with MSG, is generally safe in regulated amounts, but individuals with gout or kidney issues should limit intake due to its purine content"},
		"disodium guanylate": {Description: "Disodium guanylate, a flavor enhancer often paired with MSG, is generally safe in regulated amounts but may cause issues for individuals sensitive to purines or with gout"},
		"cane sugar":         {Description: "Provides quick energy but lacks essential nutrients and can contribute to weight gain and chronic diseases if consumed excessively"},
		"palm oil":           {Description: "Contains beneficial antioxidants but is high in saturated fats, which may raise cholesterol levels and increase heart disease risk"},
		// 常見 OCR 拼字錯誤
		"wheat floor": {Description: "Whole wheat flour is rich in fiber and nutrients, but refined wheat flour lacks these benefits and can cause blood sugar spikes"},
		"cornstarch":  {Description: "Useful as a thickener but high in refined carbs and low in nutrients, potentially spiking blood sugar levels"},
	},

	// 有害、毒性或高度加工
	Harmful: map[string]Entry{
		"high fructose corn syrup": {
			Description:  "Highly processed sweetener linked to obesity, diabetes, and other health issues",
			Alternatives: []string{"honey", "maple syrup", "coconut sugar"},
		},
		"partially hydrogenated oils": {
			Description:  "Contains trans fats linked to heart disease and other health problems",
			Alternatives: []string{"olive oil", "avocado oil", "coconut oil"},
		},
		"monosodium glutamate": {
			Description:  "Flavor enhancer that may cause adverse reactions in some people",
			Alternatives: []string{"sea salt", "herbs", "spices"},
		},
		"aspartame": {
			Description:  "Artificial sweetener linked to numerous health concerns",
			Alternatives: []string{"stevia", "monk fruit extract", "erythritol"},
		},
		"sodium nitrite": {
			Description:  "Preservative used in processed meats linked to cancer risk",
			Alternatives: []string{"celery powder (natural nitrates)", "salt-cured meats without additives"},
		},
		"butylated hydroxyanisole": {
			Description:  "Synthetic antioxidant preservative (BHA) linked to cancer risk",
			Alternatives: []string{"vitamin E (tocopherols)", "rosemary extract"},
		},
		"butylated hydroxytoluene": {
			Description:  "Synthetic antioxidant preservative (BHT) linked to cancer risk",
			Alternatives: []string{"vitamin E (tocopherols)", "rosemary extract"},
		},
		"propyl gallate": {
			Description:  "Synthetic antioxidant preservative linked to cancer risk",
			Alternatives: []string{"vitamin E (tocopherols)", "rosemary extract"},
		},
		"potassium bromate": {
			Description:  "Flour additive linked to cancer, banned in many countries but not in the US",
			Alternatives: []string{"unbromated flour"},
		},
		"azodicarbonamide": {
			Description:  "Flour bleaching agent and dough conditioner linked to respiratory issues",
			Alternatives: []string{"unbleached flour"},
		},
		"carmine": {
			Description:  "Red food coloring made from crushed cochineal beetles, may cause allergic reactions",
			Alternatives: []string{"beet juice", "paprika", "berry juices"},
		},
		"yeast extract": {
			Description:  "Often used to hide MSG (monosodium glutamate), a chemical taste enhancer",
			Alternatives: []string{"nutritional yeast", "herbs", "spices"},
		},
		"artificial colors": {
			Description:  "Synthetic dyes linked to behavioral problems and other health issues",
			Alternatives: []string{"natural food colorings from vegetables, fruits, and spices"},
		},
		"artificial flavors": {
			Description:  "Synthetic chemicals designed to mimic natural flavors",
			Alternatives: []string{"real food ingredients", "herbs", "spices"},
		},
		"sodium benzoate": {
			Description:  "Preservative that can form benzene (a carcinogen) when combined with vitamin C",
			Alternatives: []string{"citric acid", "vitamin E"},
		},
	},

	Misleading: map[string]MisleadingProduct{
		"guacamole dip": {
			Description:     "May contain little to no actual avocado, instead using hydrogenated oils and artificial colors",
			RealIngredients: "Should contain primarily avocados, lime juice, salt, and spices",
		},
		"maple syrup": {
			Description:     "Products labeled 'maple-flavored syrup' often contain no real maple syrup, just corn syrup and artificial flavors",
			RealIngredients: "Real maple syrup should have only one ingredient: maple syrup",
		},
		"blueberry": {
			Description:     "Products advertising blueberries may contain 'blueberry bits' made from sugar, oil, and blue dye",
			RealIngredients: "Should contain actual blueberries",
		},
		"whole grain": {
			Description:     "Products may advertise 'made with whole grains' but contain mostly refined flour",
			RealIngredients: "Whole grain products should list a whole grain as the first ingredient",
		},
		"fruit juice": {
			Description:     "May contain minimal actual fruit juice, with the rest being water, sugar, and flavors",
			RealIngredients: "100% fruit juice should contain only fruit juice, not added sugars",
		},
	},

	Tips: []string{
		"The first 3 ingredients matter most - they make up the majority of the product.",
		"Long, chemical-sounding ingredients often indicate highly processed foods.",
		"Ingredients at the end of the list are present in very small amounts, even if they sound healthy.",
		"Organic certification helps avoid pesticides and other contaminants not listed on labels.",
		"Look for 'sprouted' or 'raw' ingredients for higher nutritional value.",
		"'Wheat flour' is not the same as 'whole grain wheat flour' - don't be fooled!",
		"Brown products aren't necessarily healthier (e.g., brown sugar vs. white sugar).",
		"Watch out for deceptively small serving sizes that mask high calories, sugar, or fat.",
	},
}
