package bot

// Texts is the user-facing copy bundle. The flow is identical in every
// language; only the copy changes. Admin console strings stay English
// regardless of the bundle.
type Texts struct {
	MenuBuy   string
	MenuTrack string
	MenuHelp  string
	MenuAbout string
	MenuAdmin string

	Welcome      string
	Help         string
	About        string
	DefaultReply string
	ErrorReply   string
	AccessDenied string

	PriceHeader   string
	ChooseBookBtn string
	ViewAllPrices string
	BackBtn       string
	BackToMenuBtn string
	ChoosePrompt  string
	BackToMain    string

	// %s product emoji, %s product name, %s price
	AskName  string
	AskGroup string
	AskPhone string
	// %s emoji, %s product name, %s unit price
	AskQuantity       string
	AskCustomQuantity string
	ErrQuantityNaN    string
	ErrQuantityLow    string
	ErrQuantityHigh   string

	// %s emoji, %s product, %s name, %s group, %s phone, %d qty, %s total
	OrderSummary string
	ConfirmBtn   string
	EditBtn      string
	CancelBtn    string
	EditPrompt   string
	Cancelled    string

	// %d order id, %s total
	PaymentCaption string
	// %s aba url, %d order id, %s total
	PaymentInfo string
	// %s khqr url, %s aba url, %d order id
	PaymentFallback string
	PayKHQRBtn      string
	PayCashBtn      string
	PayABABtn       string
	UploadProofBtn  string
	ContactBtn      string

	// %d order id
	QRAgainCaption string
	// %d order id
	KHQRSelected string
	// %d order id
	CashSelected string
	// %d order id
	AskProof      string
	ProofReceived string
	ProofNoOrder  string
	ProofNeedImg  string

	TrackHeader string
	TrackEmpty  string
	BuyMoreBtn  string

	// %d order id
	UserOrderConfirmed string
	UserOrderRejected  string
	UserOrderCompleted string

	PhonePlaceholder string
}

// TextsFor returns the bundle for a language tag, defaulting to Khmer.
func TextsFor(lang string) *Texts {
	if lang == "en" {
		return &textsEN
	}
	return &textsKM
}

var textsKM = Texts{
	MenuBuy:   "📚 ទិញសៀវភៅ",
	MenuTrack: "📋 តាមដានការកម្មង",
	MenuHelp:  "❓ Q&A",
	MenuAbout: "👤 អំពីយើង",
	MenuAdmin: "👑 Admin Panel",

	Welcome: `🎉 *សូមស្វាគមន៍មកកាន់ហាងសៀវភៅរបស់យើង!*

ជម្រើសសៀវភៅដែលមាន:
%s
*Warning:* ⚠️
- No refund for fake payment screenshot
- Send payment screenshot after payment

ជ្រើសរើសពីម៉ឺនុយខាងក្រោម! 👇`,

	Help: `❓ *Q&A*

*How to Order:*
1. Click "📚 ទិញសៀវភៅ"
2. Choose book you want to buy
3. Fill name, Group, and phone number
4. Choose quantity
5. Choose payment method

*Payment Methods:*
💰 *KHQR*: Scan QR code
🏦 *ABA Pay*: Click link
💵 *Pay at Class*: For people no bank

*Developer Contact:* 👨‍💻 @%s

*Note:* After payment, send payment screenshot to admin`,

	About: `🏫 *Book Shop for Classmates*

We help print books for study with good price and quality.

*Contact Info:*
👨‍💻 Developer: @%s
📧 Contact: Via Telegram

*Warning:* ⚠️
- No refund
- Send payment screenshot to admin`,

	DefaultReply: "សូមជ្រើសរើសពីម៉ឺនុយ ឬផ្ញើ /start ដើម្បីចាប់ផ្ដើម។",
	ErrorReply:   "❌ *Error occurred.* Please try again or contact developer!",
	AccessDenied: "⚠️ អ្នកគ្មានសិទ្ធិប្រើប្រាស់ផ្នែកនេះទេ!",

	PriceHeader:   "💰 *Book Prices:*\n\n",
	ChooseBookBtn: "📚 Choose Book",
	ViewAllPrices: "💰 មើលតម្លៃទាំងអស់",
	BackBtn:       "🔙 ត្រឡប់",
	BackToMenuBtn: "🔙 ត្រឡប់មេនុយ",
	ChoosePrompt:  "📚 *សូមជ្រើសរើសសៀវភៅដែលបងចង់ទិញ:*\n\nClick on book you want to buy:",
	BackToMain:    "Available options:",

	AskName: `%s *Selected: %s*
💰 Price: %s

📝 *សូមបំពេញព័ត៌មានសម្រាប់ការកម្មង*

សូមវាយបញ្ចូលឈ្មោះពេញរបស់បង:`,
	AskGroup: "👥 *សូមវាយបញ្ចូល Group របស់បង*\n\nExample: Civil M3, M4, A1, B2, ...",
	AskPhone: "📞 *សូមវាយបញ្ចូលលេខទូរស័ព្ទរបស់បង*\n\nOr click /skip to skip\n(Phone number help for contact if have problem)",
	AskQuantity: `🔢 *សូមជ្រើសរើសចំនួនសៀវភៅដែលបងចង់ទិញ*

%s Book: %s
💰 Price each: %s`,
	AskCustomQuantity: "🔢 *សូមវាយបញ្ចូលចំនួនសៀវភៅដែលបងចង់ទិញ:*\n\n(Type only number example: 2, 5, 10, ...)",
	ErrQuantityNaN:    "❌ Please type correct number (example: 1, 2, 3, ...)",
	ErrQuantityLow:    "❌ Please type number greater than 0",
	ErrQuantityHigh:   "❌ Too many quantity, please contact admin",

	OrderSummary: `📋 *Order Summary:*

%s *Book:* %s
👤 *Name:* %s
👥 *Group:* %s
📞 *Phone:* %s
🔢 *Quantity:* %d
💰 *Total Price:* %s

*Do you confirm this order?*`,
	ConfirmBtn: "✅ Confirm Order",
	EditBtn:    "✏️ Edit",
	CancelBtn:  "❌ Cancel",
	EditPrompt: "✏️ សូមវាយបញ្ចូលឈ្មោះពេញរបស់បងម្ដងទៀត:",
	Cancelled:  "❌ *Order cancelled.*\n\nYou can start again anytime.",

	PaymentCaption: `📸 *KHQR for Payment*

Order Code: *#%d*
Total Price: *%s*

*Please scan QR code above to pay*
Or click ABA Pay link below👇`,
	PaymentInfo: `💰 *Additional Payment Info:*

1. *KHQR* (image above): Scan QR code via ATM or phone
2. *ABA Pay*: [Click here to pay via ABA](%s)
3. *Pay at Class*: For people no bank account

⚠️ *Important Warning:*
- After payment, send payment screenshot to admin
- No refund for fake payment screenshot

Your Order Code: *#%d*
Total Price: *%s*`,
	PaymentFallback: `💰 *Payment Methods:*

1. *KHQR*: %s
2. *ABA Pay*: [Click here](%s)
3. *Pay at Class*

Order Code: *#%d*`,
	PayKHQRBtn:     "📸 ទូទាត់តាម KHQR",
	PayCashBtn:     "💵 ទូទាត់នៅថ្នាក់",
	PayABABtn:      "🏦 ទូទាត់តាម ABA",
	UploadProofBtn: "📱 ផ្ញើ screenshot ទូទាត់",
	ContactBtn:     "📞 Contact",

	QRAgainCaption: `📸 *KHQR for Payment*

Order Code: *#%d*

*Please scan QR code above to pay*
After payment, send payment screenshot to admin.`,
	KHQRSelected: "✅ *Selected KHQR Payment*\n\nOrder Code: *#%d*\nPlease send payment screenshot after payment.",
	CashSelected: "💵 *Selected Pay at Class*\n\nOrder Code: *#%d*\n\nPlease contact admin in class to pay cash.",
	AskProof:     "📎 *Please send payment screenshot*\n\nOrder Code: *#%d*\n\nPlease send payment screenshot image.\nOr type /cancel to cancel.",
	ProofReceived: `✅ *Payment screenshot received!*

Order Code: *#%d*
We will check and notify you soon.

Thank you for payment!`,
	ProofNoOrder: "សូមជ្រើសរើស 'ផ្ញើ screenshot ទូទាត់' ពីម៉ឺនុយការកម្មងមុន។\nឬមិនទាន់មានការកម្មងរង់ចាំទូទាត់ទេ។",
	ProofNeedImg: "Please send payment screenshot image.",

	TrackHeader: "📋 *Your Order History:*\n\n",
	TrackEmpty:  "📭 *You don't have any orders yet.*\n\nClick '📚 ទិញសៀវភៅ' to start ordering!",
	BuyMoreBtn:  "📚 Buy More Books",

	UserOrderConfirmed: "✅ *Your order confirmed!*\n\nOrder Code: *#%d*\nThank you for buying!",
	UserOrderRejected:  "❌ *Your order rejected!*\n\nOrder Code: *#%d*\nPlease contact admin if have question.",
	UserOrderCompleted: "🎉 *Your order completed!*\n\nOrder Code: *#%d*\nThank you for buying! Please buy again later.",

	PhonePlaceholder: "Not specified",
}

var textsEN = Texts{
	MenuBuy:   "📚 Buy Books",
	MenuTrack: "📋 Track Orders",
	MenuHelp:  "❓ Q&A",
	MenuAbout: "👤 About Us",
	MenuAdmin: "👑 Admin Panel",

	Welcome: `🎉 *Welcome to our book shop!*

Available books:
%s
*Warning:* ⚠️
- No refund for fake payment screenshot
- Send payment screenshot after payment

Pick an option from the menu below! 👇`,

	Help: `❓ *Q&A*

*How to Order:*
1. Click "📚 Buy Books"
2. Choose book you want to buy
3. Fill name, group, and phone number
4. Choose quantity
5. Choose payment method

*Payment Methods:*
💰 *KHQR*: Scan QR code
🏦 *ABA Pay*: Click link
💵 *Pay at Class*: For people no bank

*Developer Contact:* 👨‍💻 @%s

*Note:* After payment, send payment screenshot to admin`,

	About: `🏫 *Book Shop for Classmates*

We help print books for study with good price and quality.

*Contact Info:*
👨‍💻 Developer: @%s
📧 Contact: Via Telegram

*Warning:* ⚠️
- No refund
- Send payment screenshot to admin`,

	DefaultReply: "Pick an option from the menu, or send /start to begin.",
	ErrorReply:   "❌ *Error occurred.* Please try again or contact developer!",
	AccessDenied: "⚠️ You are not allowed to use this section!",

	PriceHeader:   "💰 *Book Prices:*\n\n",
	ChooseBookBtn: "📚 Choose Book",
	ViewAllPrices: "💰 View All Prices",
	BackBtn:       "🔙 Back",
	BackToMenuBtn: "🔙 Main Menu",
	ChoosePrompt:  "📚 *Please choose the book you want to buy:*",
	BackToMain:    "Available options:",

	AskName: `%s *Selected: %s*
💰 Price: %s

📝 *Order details*

Please type your full name:`,
	AskGroup: "👥 *Please type your group*\n\nExample: Civil M3, M4, A1, B2, ...",
	AskPhone: "📞 *Please type your phone number*\n\nOr click /skip to skip\n(Phone number help for contact if have problem)",
	AskQuantity: `🔢 *Please choose how many books you want*

%s Book: %s
💰 Price each: %s`,
	AskCustomQuantity: "🔢 *Please type how many books you want:*\n\n(Type only number example: 2, 5, 10, ...)",
	ErrQuantityNaN:    "❌ Please type correct number (example: 1, 2, 3, ...)",
	ErrQuantityLow:    "❌ Please type number greater than 0",
	ErrQuantityHigh:   "❌ Too many quantity, please contact admin",

	OrderSummary: `📋 *Order Summary:*

%s *Book:* %s
👤 *Name:* %s
👥 *Group:* %s
📞 *Phone:* %s
🔢 *Quantity:* %d
💰 *Total Price:* %s

*Do you confirm this order?*`,
	ConfirmBtn: "✅ Confirm Order",
	EditBtn:    "✏️ Edit",
	CancelBtn:  "❌ Cancel",
	EditPrompt: "✏️ Please type your full name again:",
	Cancelled:  "❌ *Order cancelled.*\n\nYou can start again anytime.",

	PaymentCaption: `📸 *KHQR for Payment*

Order Code: *#%d*
Total Price: *%s*

*Please scan QR code above to pay*
Or click ABA Pay link below👇`,
	PaymentInfo: `💰 *Additional Payment Info:*

1. *KHQR* (image above): Scan QR code via ATM or phone
2. *ABA Pay*: [Click here to pay via ABA](%s)
3. *Pay at Class*: For people no bank account

⚠️ *Important Warning:*
- After payment, send payment screenshot to admin
- No refund for fake payment screenshot

Your Order Code: *#%d*
Total Price: *%s*`,
	PaymentFallback: `💰 *Payment Methods:*

1. *KHQR*: %s
2. *ABA Pay*: [Click here](%s)
3. *Pay at Class*

Order Code: *#%d*`,
	PayKHQRBtn:     "📸 Pay via KHQR",
	PayCashBtn:     "💵 Pay at Class",
	PayABABtn:      "🏦 Pay via ABA",
	UploadProofBtn: "📱 Send payment screenshot",
	ContactBtn:     "📞 Contact",

	QRAgainCaption: `📸 *KHQR for Payment*

Order Code: *#%d*

*Please scan QR code above to pay*
After payment, send payment screenshot to admin.`,
	KHQRSelected: "✅ *Selected KHQR Payment*\n\nOrder Code: *#%d*\nPlease send payment screenshot after payment.",
	CashSelected: "💵 *Selected Pay at Class*\n\nOrder Code: *#%d*\n\nPlease contact admin in class to pay cash.",
	AskProof:     "📎 *Please send payment screenshot*\n\nOrder Code: *#%d*\n\nPlease send payment screenshot image.\nOr type /cancel to cancel.",
	ProofReceived: `✅ *Payment screenshot received!*

Order Code: *#%d*
We will check and notify you soon.

Thank you for payment!`,
	ProofNoOrder: "Please select 'Send payment screenshot' from the order menu first,\nor you have no order waiting for payment.",
	ProofNeedImg: "Please send payment screenshot image.",

	TrackHeader: "📋 *Your Order History:*\n\n",
	TrackEmpty:  "📭 *You don't have any orders yet.*\n\nClick '📚 Buy Books' to start ordering!",
	BuyMoreBtn:  "📚 Buy More Books",

	UserOrderConfirmed: "✅ *Your order confirmed!*\n\nOrder Code: *#%d*\nThank you for buying!",
	UserOrderRejected:  "❌ *Your order rejected!*\n\nOrder Code: *#%d*\nPlease contact admin if have question.",
	UserOrderCompleted: "🎉 *Your order completed!*\n\nOrder Code: *#%d*\nThank you for buying! Please buy again later.",

	PhonePlaceholder: "Not specified",
}
