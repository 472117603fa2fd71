// Package addr names every MMIO register address Suzy and Mikey expose on
// the shared bus. The chip packages import this instead of hardcoding
// magic numbers, and the memory page table uses the Suzy/Mikey base/limit
// pairs to route $FC00-$FDFF accesses.
package addr

// Suzy register file: $FC00-$FCFF.
const (
	SuzyBase = 0xFC00
	SuzyEnd  = 0xFCFF

	TMPADRL = 0xFC00
	TMPADRH = 0xFC01
	TILTACUML = 0xFC02
	TILTACUMH = 0xFC03
	HOFFL   = 0xFC04
	HOFFH   = 0xFC05
	VOFFL   = 0xFC06
	VOFFH   = 0xFC07
	VIDBASL = 0xFC08
	VIDBASH = 0xFC09
	COLLBASL = 0xFC0A
	COLLBASH = 0xFC0B
	VIDADRL = 0xFC0C
	VIDADRH = 0xFC0D
	COLLADRL = 0xFC0E
	COLLADRH = 0xFC0F
	SCBNEXTL = 0xFC10
	SCBNEXTH = 0xFC11
	SPRDLINEL = 0xFC12
	SPRDLINEH = 0xFC13
	HPOSSTRTL = 0xFC14
	HPOSSTRTH = 0xFC15
	VPOSSTRTL = 0xFC16
	VPOSSTRTH = 0xFC17
	SPRHSIZL = 0xFC18
	SPRHSIZH = 0xFC19
	SPRVSIZL = 0xFC1A
	SPRVSIZH = 0xFC1B
	STRETCHL = 0xFC1C
	STRETCHH = 0xFC1D
	TILTL   = 0xFC1E
	TILTH   = 0xFC1F
	SPRDOFFL = 0xFC20
	SPRDOFFH = 0xFC21
	SPRVPOSL = 0xFC22
	SPRVPOSH = 0xFC23
	COLLOFFL = 0xFC24
	COLLOFFH = 0xFC25
	VSIZACUML = 0xFC26
	VSIZACUMH = 0xFC27
	HSIZOFFL = 0xFC28
	HSIZOFFH = 0xFC29
	VSIZOFFL = 0xFC2A
	VSIZOFFH = 0xFC2B
	SCBADRL = 0xFC2C
	SCBADRH = 0xFC2D
	PROCADRL = 0xFC2E
	PROCADRH = 0xFC2F

	MATHD = 0xFC52
	MATHC = 0xFC53
	MATHB = 0xFC54
	MATHA = 0xFC55
	MATHP = 0xFC56
	MATHN = 0xFC57
	MATHH = 0xFC60
	MATHG = 0xFC61
	MATHF = 0xFC62
	MATHE = 0xFC63
	MATHM = 0xFC6C
	MATHL = 0xFC6D
	MATHK = 0xFC6E
	MATHJ = 0xFC6F

	SPRCTL0   = 0xFC80
	SPRCTL1   = 0xFC81
	SPRCOLL   = 0xFC82
	SPRINIT   = 0xFC83
	SUZYHREV  = 0xFC88
	SUZYSREV  = 0xFC89
	SUZYBUSEN = 0xFC90
	SPRGO     = 0xFC91
	SPRSYS    = 0xFC92

	JOYSTICK  = 0xFCB0
	SWITCHES  = 0xFCB1
	RCART0    = 0xFCB2
	RCART1    = 0xFCB3
	LEDS      = 0xFCC0
	PPORTSTAT = 0xFCC2
	PPORTDATA = 0xFCC3
	HOWIE     = 0xFCC4
)

// Mikey register file: $FD00-$FDFF.
const (
	MikeyBase = 0xFD00
	MikeyEnd  = 0xFDFF

	TIM0BKUP = 0xFD00
	TIM0CTLA = 0xFD01
	TIM0CNT  = 0xFD02
	TIM0CTLB = 0xFD03
	TIM1BKUP = 0xFD04
	TIM1CTLA = 0xFD05
	TIM1CNT  = 0xFD06
	TIM1CTLB = 0xFD07
	TIM2BKUP = 0xFD08
	TIM2CTLA = 0xFD09
	TIM2CNT  = 0xFD0A
	TIM2CTLB = 0xFD0B
	TIM3BKUP = 0xFD0C
	TIM3CTLA = 0xFD0D
	TIM3CNT  = 0xFD0E
	TIM3CTLB = 0xFD0F
	TIM4BKUP = 0xFD10
	TIM4CTLA = 0xFD11
	TIM4CNT  = 0xFD12
	TIM4CTLB = 0xFD13
	TIM5BKUP = 0xFD14
	TIM5CTLA = 0xFD15
	TIM5CNT  = 0xFD16
	TIM5CTLB = 0xFD17
	TIM6BKUP = 0xFD18
	TIM6CTLA = 0xFD19
	TIM6CNT  = 0xFD1A
	TIM6CTLB = 0xFD1B
	TIM7BKUP = 0xFD1C
	TIM7CTLA = 0xFD1D
	TIM7CNT  = 0xFD1E
	TIM7CTLB = 0xFD1F

	AUD0VOL  = 0xFD20
	AUD0SHFTFB = 0xFD21
	AUD0OUTVAL = 0xFD22
	AUD0L8SHFT = 0xFD23
	AUD0TBACK  = 0xFD24
	AUD0CTL    = 0xFD25
	AUD0COUNT  = 0xFD26
	AUD0MISC   = 0xFD27
	AUD1VOL  = 0xFD28
	AUD1SHFTFB = 0xFD29
	AUD1OUTVAL = 0xFD2A
	AUD1L8SHFT = 0xFD2B
	AUD1TBACK  = 0xFD2C
	AUD1CTL    = 0xFD2D
	AUD1COUNT  = 0xFD2E
	AUD1MISC   = 0xFD2F
	AUD2VOL  = 0xFD30
	AUD2SHFTFB = 0xFD31
	AUD2OUTVAL = 0xFD32
	AUD2L8SHFT = 0xFD33
	AUD2TBACK  = 0xFD34
	AUD2CTL    = 0xFD35
	AUD2COUNT  = 0xFD36
	AUD2MISC   = 0xFD37
	AUD3VOL  = 0xFD38
	AUD3SHFTFB = 0xFD39
	AUD3OUTVAL = 0xFD3A
	AUD3L8SHFT = 0xFD3B
	AUD3TBACK  = 0xFD3C
	AUD3CTL    = 0xFD3D
	AUD3COUNT  = 0xFD3E
	AUD3MISC   = 0xFD3F

	ATTEN_A  = 0xFD40
	ATTEN_B  = 0xFD41
	ATTEN_C  = 0xFD42
	ATTEN_D  = 0xFD43
	MPAN     = 0xFD44
	MSTEREO  = 0xFD50

	INTRST  = 0xFD80
	INTSET  = 0xFD81
	MAGRDY0 = 0xFD84
	MAGRDY1 = 0xFD85
	AUDIN   = 0xFD86
	SYSCTL1 = 0xFD87
	MIKEYHREV = 0xFD88
	MIKEYSREV = 0xFD89
	IODIR   = 0xFD8A
	IODAT   = 0xFD8B
	SERCTL  = 0xFD8C
	SERDAT  = 0xFD8D

	SDONEACK = 0xFD90
	CPUSLEEP = 0xFD91
	DISPCTL  = 0xFD92
	PBKUP    = 0xFD93
	DISPADRL = 0xFD94
	DISPADRH = 0xFD95

	MTEST0 = 0xFD9C
	MTEST1 = 0xFD9D
	MTEST2 = 0xFD9E
)

// Palette DAC: 16 green nibbles, 16 blue/red-packed nibbles.
const (
	GreenBase    = 0xFDA0
	BlueRedBase  = 0xFDB0
	PaletteCount = 16
)

// MAPCTL is special-cased by the memory page table ahead of the page lookup;
// it is neither in Suzy's nor Mikey's register block.
const MAPCTL = 0xFFF9

// High memory: BIOS shadow and the 6502 vector table, both routed through
// the "last page" handler regardless of MAPCTL.
const (
	HighPageBase  = 0xFF00
	BiosVisibleLo = 0xFE00 // page $FE is the BIOS/Suzy(page-shared) boundary
	VectorsLo     = 0xFFFA
)
