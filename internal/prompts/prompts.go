// Package prompts holds the journal and self-compassion prompt tables.
package prompts

import (
	"hash/fnv"
	"math/rand/v2"
	"strconv"
	"strings"
)

// Journal prompts, grouped by theme.
var Journal = []string{
	// Gratitude
	"What's one small thing that went well today, even if the rest was hard?",
	"Name someone or something you're quietly grateful for right now.",
	"What's a comfort you tend to take for granted?",
	"What part of your routine actually makes your day better?",
	"What's something your body did for you today that you can appreciate?",

	// Growth
	"What's something you're learning, even if it's slow going?",
	"Where did you show up for yourself today, even imperfectly?",
	"What skill or habit is 1% better than it was a month ago?",
	"What would 'good enough' look like for tomorrow?",
	"What's one thing you'd tell a friend who was being as hard on themselves as you are?",

	// Challenge
	"What felt heavy today? You don't have to fix it, just name it.",
	"What obstacle keeps showing up? What's one tiny experiment to try?",
	"What's draining your energy that you might be able to delegate or drop?",
	"What are you avoiding? What makes it hard to start?",
	"If this struggle had a lesson, what might it be teaching you?",

	// Creativity
	"If you had zero obligations tomorrow, what would you do first?",
	"What's a project or idea that excites you, even if it feels impractical?",
	"When do you feel most like yourself?",
	"What would you create if nobody was going to judge it?",
	"What's a question you've been sitting with lately?",

	// Self-compassion
	"Where are you being too hard on yourself right now?",
	"What would it feel like to let yourself rest without guilt?",
	"You're allowed to struggle AND be making progress. Where is that true?",
	"What do you need to hear right now that nobody is saying?",
	"If today was your friend's day, what would you tell them about it?",
}

// Compassion prompts are shown above the evening reflection.
var Compassion = []string{
	"What would you say to a friend who had the day you just had?",
	"Name one thing you did today that took courage, even a small one.",
	"Rest is not laziness. What rest did your body or mind need today?",
	"Progress isn't always visible. What invisible growth happened today?",
	"You showed up today. That counts. What made showing up possible?",
	"What's one kind thing you can do for yourself right now?",
	"Difficulty isn't failure, it's information. What did today teach you?",
	"Some days are for surviving, not thriving. Which was today, and that's okay either way.",
	"What's one thing you're grateful for, even if the day was hard?",
	"You don't have to earn rest. How will you rest tonight?",
	"Perfection is the enemy of progress. Where did 'good enough' serve you today?",
	"What part of today would you like to carry into tomorrow?",
	"Your worth isn't measured by your productivity. What made you feel human today?",
	"What boundary did you hold or wish you had held today?",
	"Small steps still move you forward. What small step did you take?",
	"It's okay to not be okay. How are you really feeling right now?",
	"What's something you learned about yourself today?",
	"Comparison steals joy. What's YOUR win today, regardless of anyone else?",
	"You are more than your to-do list. What brought you joy today?",
	"Tomorrow is a fresh start. What's one thing you want to try differently?",
	"Energy fluctuates; that's human, not weakness. How was your energy today?",
	"What's one thing you can let go of from today?",
	"You made it through today. That alone deserves acknowledgment.",
	"What surprised you about today?",
	"If today were a chapter title, what would it be?",
	"What's one thing you did today that past-you would be proud of?",
	"Stress is a signal, not a sentence. What was your body telling you today?",
	"What's something you want to remember about today?",
	"You're allowed to change your mind. What opinion shifted today?",
	"Every expert was once a beginner. Where are you still learning, and that's great?",
}

// ForDate returns the journal prompt of a date. The same date always gets
// the same prompt.
func ForDate(date string) string {
	h := fnv.New32a()
	h.Write([]byte(date))
	return Journal[h.Sum32()%uint32(len(Journal))]
}

// CompassionForDate picks the reflection prompt of a YYYY-MM-DD date.
// Consecutive days within a month get consecutive prompts.
func CompassionForDate(date string) string {
	n, err := strconv.ParseUint(strings.ReplaceAll(date, "-", ""), 10, 64)
	if err != nil {
		return Compassion[0]
	}
	return Compassion[n%uint64(len(Compassion))]
}

// Shuffle returns a random journal prompt other than exclude.
func Shuffle(exclude string) string {
	candidates := make([]string, 0, len(Journal))
	for _, p := range Journal {
		if p != exclude {
			candidates = append(candidates, p)
		}
	}
	return candidates[rand.IntN(len(candidates))]
}
