package llm

const systemPrompt = "You are a market-intelligence analyst for a higher-education brand. " +
	"You classify short texts about schools, programs, admissions and careers. " +
	"Prioritize accuracy and valid JSON."

const classifyPromptTemplate = `Assign the text below to exactly one category.

Known categories:
%s

Rules:
- If one of the known categories fits, return its name verbatim.
- If none fits but a clear new category exists, return a short new label.
- If the text cannot be categorized at all, return exactly "Unclassifiable".

Return ONLY a JSON object: {"category": "..."}

Text:
%s`

const groupTopicsPromptTemplate = `Bucket the following topics into at most %d strategic groups
(for example: Reputation, Acquisition, Competition, Product, Outlook).

Topics (name | mentions | avg sentiment):
%s

Return ONLY a JSON array:
[{"group": "...", "avg_sentiment": 0.0, "total_occurrences": 0, "members": ["..."]}]`

const sentimentPromptTemplate = `You are an expert sentiment analyst.

Score the text on a scale from -1 (very negative) to 1 (very positive):
- explicit praise, excellent results, clear improvement: 0.6 to 1.0
- favorable judgement, usefulness, advantages: 0.2 to 0.6
- factual information without judgement: -0.2 to 0.2
- criticism, problems, complaints, setbacks: -0.6 to -0.2
- strong rejection, failure, harm: -1.0 to -0.6

Words like "uncertainty", "concern", "risk", "decline", "doubt", "fear" must
lower the score and never yield a positive value. Ambiguous but worried tone
is mildly negative (about -0.2 to -0.4) or neutral.

Return ONLY this exact JSON shape:
{"sentiment": 0.0, "emotion": "neutral", "confidence": 0.0}

Where emotion is one of: joy, sadness, anger, fear, surprise, neutral.

Text:
%s`

const maxStrategicGroups = 6
