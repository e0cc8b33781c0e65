package feed

import "time"

func at(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02T15:04:05", s, time.Local)
	if err != nil {
		panic(err)
	}
	return t
}

func author(username string) Author {
	return Author{ID: username, Username: username}
}

func (s *Store) seed() {
	s.posts = []Post{
		{ID: "1", Author: author("workaffirmations"), Content: "The Katy Perry spaceship plan is a big LOL because they genuinely thought we would be inspired by watching rich women spend money.", Timestamp: at("2023-07-06T12:00:00"), Likes: 565, Replies: 30},
		{ID: "2", Author: author("nao_dgni_dauftu_doi_ten"), Content: "Mình mới coi xong điểm đgnl của mình, điểm kh nằm ở top cao cũng k phải top thấp\nMng có ai biết tư lấy điểm đgnl như nào kh v điểm mình chỉ từ 850-900 th a", Timestamp: at("2023-07-05T14:30:00"), Likes: 59, Replies: 13, IsLiked: true},
		{ID: "3", Author: author("tuenhi"), Content: "Mọi người ơi!! Hiện tại em là sinh viên muốn tìm việc kiểu như làm thu ngân part time ở tp HCM. Mọi người có biết chỗ nào khum ạ😭", Timestamp: at("2023-07-05T10:15:00"), Likes: 1, Replies: 4},
		{ID: "4", Author: author("vyxinhgai_99"), Content: "Đang nwng ❤️ là có ảnh 🦋", Timestamp: at("2023-07-05T11:15:00"), Likes: 7},
		{ID: "5", Author: author("amaya100"), Content: "Senator Chris Van Hollen announces he will be travelling to El Salvador TOMORROW MORNING. 👏🏾👏🏾", Timestamp: at("2023-07-04T09:30:00"), Likes: 819, Replies: 22},
		{ID: "6", Author: author("chris_the_soup"), Content: "@wendys please come dip your fries in my tears", Timestamp: at("2023-07-04T08:15:00"), Likes: 14, Replies: 2},
		{ID: "7", Author: author("georgehtakei"), Content: "When did the Republican Party become such a group of snowflakes? They talk tough, but when it comes down to it, they are the biggest cowards, scared of LGBTQ+ books, the truth about slavery, drag queens, and the grim reality of gun violence.", Timestamp: at("2023-07-03T20:45:00"), Likes: 1235, Replies: 87},
		{ID: "8", Author: author("thejigsawpuzzle"), Content: "Put all your feral pigs into a very big jar and shake it up to create pulled pork.", Timestamp: at("2023-07-03T15:20:00"), Likes: 433, Replies: 12},
		{ID: "9", Author: author("szechuan_sauce"), Content: "Đang chuẩn bị cho kỳ thi tốt nghiệp. Cảm thấy sắp đầu hàng với Vật Lý rồi 😢", Timestamp: at("2023-07-02T10:45:00"), Likes: 89, Replies: 23},
		{ID: "10", Author: author("coffeelover42"), Content: "Hôm nay ở Sài Gòn mưa quá trời, ngập cả đường luôn. Ai đang ở ngoài đường nhớ cẩn thận nha mọi người ơi!", Timestamp: at("2023-07-01T16:30:00"), Likes: 156, Replies: 34},
		{ID: "11", Author: author("istrawberryyou0"), Content: "t với bố t đi cà phê\nt vừa đau bụng chưa kịp nói vì chưa muốn về\nbố t \"anh đau bụng quá hay mình về sớm đi\"\nt mới bảo \"bố đau bụng vẻ là hết đau hay gì?\"\nánh kêu \"anh về đi là\" 🫠", Timestamp: at("2023-06-30T12:00:00"), Likes: 2400, Replies: 51},
		{ID: "12", Author: author("hg.ducc"), Content: "Đây là bài đăng đầu tiên của tôi trên Threads City!", Timestamp: at("2023-06-29T14:30:00"), Likes: 24, Replies: 3},
		{ID: "13", Author: author("hg.ducc"), Content: "Đang trên đường đi học, thời tiết hôm nay đẹp quá!", Timestamp: at("2023-06-28T09:15:00"), Likes: 18, Replies: 2},
	}

	s.replies["11"] = []Post{
		{ID: "reply1", Author: author("nguyenanhthuongle"), Content: "Bố trong quán cà phê không có nhà vệ sinh cho a là hả :)", Timestamp: at("2023-06-30T12:30:00"), Likes: 164, Replies: 7, ReplyTo: "11"},
		{ID: "reply2", Author: author("_havit.02_"), Content: "mỗi lần thấy bố mình kêu buồn ỉa hay đi ỉa là mình cười éo chịu đc", Timestamp: at("2023-06-30T13:00:00"), Likes: 41, Replies: 1, ReplyTo: "11"},
		{ID: "reply3", Author: author("istrawberryyou0"), Content: "bố t với t suốt ngày đau bụng và ỉa", Timestamp: at("2023-06-30T13:30:00"), Likes: 4, ReplyTo: "11"},
	}

	s.following = map[string]bool{
		"workaffirmations": true,
		"tuenhi":           true,
		"istrawberryyou0":  true,
		"coffeelover42":    true,
		"hg.ducc":          true,
	}

	now := s.now()
	day := 24 * time.Hour
	s.notifications = []Notification{
		{ID: "1", Kind: KindLike, User: author("maahngf"), Timestamp: now.Add(-2 * day), PostID: "12"},
		{ID: "2", Kind: KindReply, User: author("nhydisney"), Content: "Cực cưng ><", Timestamp: now.Add(-3 * day), PostID: "12"},
		{ID: "3", Kind: KindThreadReply, User: author("tg.namm_"), Content: "Đã bắt đầu một thread", Timestamp: now.Add(-4 * day), PostID: "13", Read: true},
		{ID: "4", Kind: KindFollow, User: author("cibidi.six"), Timestamp: now.Add(-5 * day), Read: true},
	}

	s.users = []SuggestedUser{
		{ID: "ktln_thread", Username: "ktln_thread", DisplayName: "KTLN", Followers: 9342, Bio: "Thread của KTLN"},
		{ID: "moon.nef_", Username: "moon.nef_", DisplayName: "Mangata", Followers: 78100, Bio: "Nơi giải toả nỗi buồn\nSomewhere with someone 🌱 🌱"},
		{ID: "kienbo_", Username: "kienbo_", DisplayName: "Trung Kiên", Followers: 67},
		{ID: "_vhoantr", Username: "_vhoantr", DisplayName: "Trần Việt Hoàn", Followers: 192, Bio: "📍 Hanoi | 18+"},
		{ID: "caonhi_2k6", Username: "caonhi_2k6", DisplayName: "Cao Nhi", Followers: 1240, Bio: "Sống và làm việc tại Sài Gòn ✨"},
		{ID: "thucuoi_01", Username: "thucuoi_01", DisplayName: "Thu Cười", Followers: 643, Bio: "Designer | Photographer 📸"},
	}

	s.profiles = map[string]Profile{
		"hg.ducc": {Username: "hg.ducc", DisplayName: "Hong Duc", Bio: "Ducc", Followers: 72, Following: 145},
	}
}
